package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)

	past := NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, past.CurrentPage)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\% off%`, LikePattern(" 50% off "))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate(nil)
	assert.NoError(t, err)
	assert.Nil(t, d)

	s := "2024-02-29"
	d, err = ParseOptionalDate(&s)
	assert.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	bad := "29/02/2024"
	_, err = ParseOptionalDate(&bad)
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Hour, ParseDuration("0s", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("-5m", time.Hour))
}
