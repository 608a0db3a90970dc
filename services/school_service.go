package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/schoolcup/tournament-backend/models"
	"github.com/schoolcup/tournament-backend/repositories"
	"github.com/schoolcup/tournament-backend/storage"
)

type SchoolService interface {
	CreateSchool(ctx context.Context, input CreateSchoolInput) (*models.School, error)
	GetSchoolByID(ctx context.Context, id int) (*models.School, error)
	ListSchools(ctx context.Context, nameFilter *string) ([]models.School, error)
	// RegisterInTournament регистрирует школу в турнире, создавая команду.
	RegisterInTournament(ctx context.Context, input RegisterSchoolInput) (*models.Team, error)
	UploadShield(ctx context.Context, schoolID int, contentType string, file io.Reader) (*models.School, error)
}

type CreateSchoolInput struct {
	Name string  `json:"name"`
	City *string `json:"city,omitempty"`
}

type RegisterSchoolInput struct {
	TournamentID int     `json:"tournament_id"`
	SchoolID     int     `json:"school_id"`
	Sponsor      *string `json:"sponsor,omitempty"`
}

type schoolService struct {
	schoolRepo     repositories.SchoolRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
}

func NewSchoolService(
	schoolRepo repositories.SchoolRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) SchoolService {
	return &schoolService{
		schoolRepo:     schoolRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
	}
}

func (s *schoolService) CreateSchool(ctx context.Context, input CreateSchoolInput) (*models.School, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSchoolNameRequired
	}

	school := &models.School{
		Name: name,
		City: input.City,
	}

	if err := s.schoolRepo.Create(ctx, school); err != nil {
		if errors.Is(err, repositories.ErrSchoolNameConflict) {
			return nil, ErrSchoolNameConflict
		}
		return nil, fmt.Errorf("failed to create school: %w", err)
	}
	return school, nil
}

func (s *schoolService) GetSchoolByID(ctx context.Context, id int) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school by id %d: %w", id, err)
	}
	s.populateShieldURL(school)
	return school, nil
}

func (s *schoolService) ListSchools(ctx context.Context, nameFilter *string) ([]models.School, error) {
	schools, err := s.schoolRepo.List(ctx, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	for i := range schools {
		s.populateShieldURL(&schools[i])
	}
	return schools, nil
}

func (s *schoolService) RegisterInTournament(ctx context.Context, input RegisterSchoolInput) (*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to validate tournament %d: %w", input.TournamentID, err)
	}
	if _, err := s.schoolRepo.GetByID(ctx, input.SchoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to validate school %d: %w", input.SchoolID, err)
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		SchoolID:     input.SchoolID,
		Sponsor:      input.Sponsor,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamAlreadyRegistered) {
			return nil, ErrSchoolAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register school %d in tournament %d: %w", input.SchoolID, input.TournamentID, err)
	}

	// Перечитываем команду вместе со школой для ответа.
	created, err := s.teamRepo.GetByID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created team %d: %w", team.ID, err)
	}
	if created.School != nil {
		s.populateShieldURL(created.School)
	}
	return created, nil
}

func (s *schoolService) UploadShield(ctx context.Context, schoolID int, contentType string, file io.Reader) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school %d: %w", schoolID, err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("schools/%d/shield%s", schoolID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload shield for school %d: %w", schoolID, err)
	}

	oldKey := school.ShieldKey
	if err := s.schoolRepo.UpdateShieldKey(ctx, schoolID, &key); err != nil {
		return nil, fmt.Errorf("failed to persist shield key for school %d: %w", schoolID, err)
	}
	if oldKey != nil && *oldKey != key {
		// Старый файл больше не нужен; ошибка удаления не фатальна.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	school.ShieldKey = &key
	s.populateShieldURL(school)
	return school, nil
}

func (s *schoolService) populateShieldURL(school *models.School) {
	if school == nil || s.uploader == nil {
		return
	}
	if school.ShieldKey != nil && *school.ShieldKey != "" {
		url := s.uploader.GetPublicURL(*school.ShieldKey)
		if url != "" {
			school.ShieldURL = &url
		}
	}
}
