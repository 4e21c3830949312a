package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/tpcell/portal/internal/db"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	OTPRepository         *OTPRepository
	StudentRepository     *StudentRepository
	CompanyRepository     *CompanyRepository
	JAFRepository         *JAFRepository
	ApplicationRepository *ApplicationRepository
	ActivityLogRepository *ActivityLogRepository
	SettingsRepository    *SettingsRepository
	StatsRepository       *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(conn),
		TokenRepository:       NewTokenRepository(conn),
		OTPRepository:         NewOTPRepository(conn),
		StudentRepository:     NewStudentRepository(conn),
		CompanyRepository:     NewCompanyRepository(conn),
		JAFRepository:         NewJAFRepository(conn),
		ApplicationRepository: NewApplicationRepository(conn),
		ActivityLogRepository: NewActivityLogRepository(conn),
		SettingsRepository:    NewSettingsRepository(conn),
		StatsRepository:       NewStatsRepository(conn),
	}
}
