package services

import (
	"testing"
	"time"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTournamentDates(t *testing.T) {
	start, end, err := parseTournamentDates("2026-03-01", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), end)

	start, _, err = parseTournamentDates("2026-03-01T10:00:00Z", "2026-06-30T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, start.Hour())

	_, _, err = parseTournamentDates("март", "2026-06-30")
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestValidateTournamentDates(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateTournamentDates(start, end))
	assert.ErrorIs(t, validateTournamentDates(end, start), ErrTournamentInvalidDateRange)
	assert.ErrorIs(t, validateTournamentDates(start, start), ErrTournamentInvalidDateRange)
	assert.ErrorIs(t, validateTournamentDates(time.Time{}, end), ErrTournamentDatesRequired)
}

func TestIsValidStatusTransition(t *testing.T) {
	assert.True(t, isValidStatusTransition(models.StatusSoon, models.StatusRegistration))
	assert.True(t, isValidStatusTransition(models.StatusRegistration, models.StatusActive))
	assert.True(t, isValidStatusTransition(models.StatusActive, models.StatusCompleted))
	assert.True(t, isValidStatusTransition(models.StatusActive, models.StatusCanceled))
	assert.True(t, isValidStatusTransition(models.StatusActive, models.StatusActive))

	assert.False(t, isValidStatusTransition(models.StatusCompleted, models.StatusActive))
	assert.False(t, isValidStatusTransition(models.StatusCanceled, models.StatusSoon))
	assert.False(t, isValidStatusTransition(models.StatusSoon, models.StatusCompleted))
}

func TestExtensionFromContentType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":    ".jpg",
		"image/png":     ".png",
		"image/webp":    ".webp",
		"image/svg+xml": ".svg",
		"image/avif":    ".avif",
	}
	for contentType, want := range cases {
		got, err := extensionFromContentType(contentType)
		require.NoError(t, err, contentType)
		assert.Equal(t, want, got, contentType)
	}

	_, err := extensionFromContentType("application/pdf")
	assert.Error(t, err)
}
