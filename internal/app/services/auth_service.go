package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
	"github.com/tpcell/portal/internal/pkg/email"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/metrics"
)

// OTPConfig controls email verification codes
type OTPConfig struct {
	Expiration  time.Duration
	MaxAttempts int
}

// AuthService handles registration, email verification and sessions
type AuthService struct {
	tx          db.Transactor
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	tokenRepo   *repositories.TokenRepository
	otpRepo     *repositories.OTPRepository
	jwtService  *auth.JWTService
	emails      email.EmailService
	otp         OTPConfig
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	tx db.Transactor,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emails email.EmailService,
	otp OTPConfig,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		tx:          tx,
		userRepo:    repos.UserRepository,
		studentRepo: repos.StudentRepository,
		companyRepo: repos.CompanyRepository,
		tokenRepo:   repos.TokenRepository,
		otpRepo:     repos.OTPRepository,
		jwtService:  jwtService,
		emails:      emails,
		otp:         otp,
		logger:      logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueOTP stores a fresh code for userID and returns it in clear text
func (s *AuthService) issueOTP(ctx context.Context, otpRepo *repositories.OTPRepository, userID int64) (string, error) {
	code, hash, err := auth.GenerateOTP()
	if err != nil {
		return "", err
	}
	err = otpRepo.Upsert(ctx, &models.EmailOTP{
		UserID:       userID,
		CodeHash:     hash,
		ExpiresAt:    time.Now().Add(s.otp.Expiration),
		AttemptsLeft: s.otp.MaxAttempts,
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *AuthService) sendOTP(ctx context.Context, user *models.User, code string) {
	err := s.emails.SendOTPEmail(detached(ctx), user.Email, user.FullName(), code, s.otp.Expiration)
	metrics.RecordEmail("otp", err)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification code")
	}
}

// RegisterStudent creates the user, the student profile and a verification
// code in one transaction, then emails the code.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegistrationResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     normalizeEmail(req.Email),
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	var code string
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.WithTx(tx).CreateUser(ctx, user); err != nil {
			return err
		}
		student := &models.Student{
			UserID:     user.ID,
			RollNumber: strings.ToUpper(strings.TrimSpace(req.RollNumber)),
			Branch:     strings.TrimSpace(req.Branch),
			Degree:     strings.ToUpper(strings.TrimSpace(req.Degree)),
			Batch:      req.Batch,
			Phone:      helpers.NullableString(req.Phone),
		}
		if err := s.studentRepo.WithTx(tx).Create(ctx, student); err != nil {
			return err
		}
		code, err = s.issueOTP(ctx, s.otpRepo.WithTx(tx), user.ID)
		return err
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrRollNumberExists) {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Student registration failed")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Student registered")
	s.sendOTP(ctx, user, code)

	return &dto.RegistrationResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "Registration successful. Check your email for the verification code.",
	}, nil
}

// RegisterCompany creates the user, the company with empty details and a
// verification code in one transaction, then emails the code.
func (s *AuthService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.RegistrationResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     normalizeEmail(req.Email),
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  models.RoleCompany,
		IsActive:  true,
	}

	var code string
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.userRepo.WithTx(tx).CreateUser(ctx, user); err != nil {
			return err
		}
		company := &models.Company{
			UserID:   user.ID,
			Name:     strings.TrimSpace(req.CompanyName),
			Website:  helpers.NullableString(req.Website),
			Industry: helpers.NullableString(req.Industry),
		}
		if err := s.companyRepo.WithTx(tx).Create(ctx, company); err != nil {
			return err
		}
		code, err = s.issueOTP(ctx, s.otpRepo.WithTx(tx), user.ID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Company registration failed")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Company registered")
	s.sendOTP(ctx, user, code)

	return &dto.RegistrationResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "Registration successful. Check your email for the verification code.",
	}, nil
}

// VerifyOTP confirms the email address of a user
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidOTP
		}
		return err
	}
	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	otp, err := s.otpRepo.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if otp.AttemptsLeft <= 0 {
		return apperrors.ErrOTPAttemptsExceeded
	}
	if time.Now().After(otp.ExpiresAt) {
		return apperrors.NewCustomError(apperrors.ErrInvalidOTP, "Verification code has expired. Request a new one.")
	}

	if !auth.CheckPassword(otp.CodeHash, req.OTP) {
		left, err := s.otpRepo.DecrementAttempts(ctx, user.ID)
		if err != nil {
			return err
		}
		if left <= 0 {
			return apperrors.ErrOTPAttemptsExceeded
		}
		return apperrors.NewCustomError(apperrors.ErrInvalidOTP, "Invalid verification code").
			WithDetails(map[string]interface{}{"attemptsLeft": left})
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.WithTx(tx).MarkEmailVerified(ctx, user.ID); err != nil {
			return err
		}
		return s.otpRepo.WithTx(tx).Delete(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Email verified")
	err = s.emails.SendWelcomeEmail(detached(ctx), user.Email, user.FullName())
	metrics.RecordEmail("welcome", err)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send welcome email")
	}
	return nil
}

// ResendOTP issues a new verification code. Unknown addresses succeed
// silently so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", req.Email).Msg("Verification code requested for unknown email")
			return nil
		}
		return err
	}
	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	code, err := s.issueOTP(ctx, s.otpRepo, user.ID)
	if err != nil {
		return err
	}
	s.sendOTP(ctx, user, code)
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// Login checks credentials and starts a session
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Info().Int64("userID", user.ID).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}
	now := time.Now()
	user.LastLoginAt = &now

	return &dto.AuthResponse{Token: *tokens, User: dto.NewUserResponse(user)}, nil
}

// RefreshToken rotates a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, *userID)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		_ = s.tokenRepo.RevokeAllUserTokens(ctx, user.ID)
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes refreshToken, or every session of the user when it is empty
func (s *AuthService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
	}
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// Me returns the session user with their student or company profile
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{User: dto.NewUserResponse(user)}
	switch user.RoleType {
	case models.RoleStudent:
		if resp.Student, err = s.studentRepo.GetByUserID(ctx, userID); err != nil {
			return nil, err
		}
		resp.Student.User = nil
	case models.RoleCompany:
		if resp.Company, err = s.companyRepo.GetByUserID(ctx, userID); err != nil {
			return nil, err
		}
		resp.Company.User = nil
	}
	return resp, nil
}

// Contact forwards a public contact form submission to the placement cell
func (s *AuthService) Contact(ctx context.Context, req *dto.ContactRequest) error {
	err := s.emails.SendContactFormEmail(ctx, email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	metrics.RecordEmail("contact", err)
	if err != nil {
		return apperrors.NewCustomError(err, "Your message could not be delivered. Please try again later.")
	}
	return nil
}
