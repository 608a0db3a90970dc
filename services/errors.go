package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrSchoolNameRequired     = errors.New("school name is required")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrMatchTeamsIdentical    = errors.New("a team cannot play against itself")
	ErrMatchAlreadySettled    = errors.New("match result can no longer be changed")
	ErrTeamNotInTournament    = errors.New("school has no team registered in this tournament")

	// Целостность данных матчей: завершённый матч без счёта или со ссылкой
	// на команду вне турнира отклоняется, а не считается нулевым.
	ErrInconsistentMatchData = errors.New("inconsistent match data for standings computation")

	// Ошибки конфликтов
	ErrUserEmailConflict       = errors.New("email address is already in use")
	ErrSchoolNameConflict      = errors.New("school name is already in use")
	ErrSchoolAlreadyRegistered = errors.New("school is already registered in this tournament")
	ErrPlayerAlreadyInTeam     = errors.New("user is already a player of this team")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей (дублируют ErrNotFound, но дают больше контекста)
	ErrUserNotFound       = errors.New("user not found")
	ErrSchoolNotFound     = errors.New("school not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPhaseNotFound      = errors.New("phase not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrStandingNotFound   = errors.New("standing not found")
	ErrPlayerNotFound     = errors.New("player not found")

	// Ошибки турниров
	ErrTournamentDatesRequired           = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
