package handlers

import (
	"net/http"

	"github.com/schoolcup/tournament-backend/services"
)

const maxShieldSize = 5 << 20 // 5MB

type SchoolHandler struct {
	schoolService   services.SchoolService
	standingService services.StandingService
}

func NewSchoolHandler(schoolService services.SchoolService, standingService services.StandingService) *SchoolHandler {
	return &SchoolHandler{
		schoolService:   schoolService,
		standingService: standingService,
	}
}

func (h *SchoolHandler) CreateSchool(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSchoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	school, err := h.schoolService.CreateSchool(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) GetSchool(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	school, err := h.schoolService.GetSchoolByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) ListSchools(w http.ResponseWriter, r *http.Request) {
	var nameFilter *string
	if name := r.URL.Query().Get("name"); name != "" {
		nameFilter = &name
	}

	schools, err := h.schoolService.ListSchools(r.Context(), nameFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schools": schools}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterInTournament регистрирует школу в турнире: создаётся команда,
// которая сразу попадает в общую таблицу с нулевой статистикой.
func (h *SchoolHandler) RegisterInTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RegisterSchoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.TournamentID = tournamentID

	team, err := h.schoolService.RegisterInTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) UploadShield(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxShieldSize); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("shield")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	school, err := h.schoolService.UploadShield(r.Context(), schoolID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStatistics отдаёт статистику школы в конкретном турнире. Перед чтением
// общая таблица турнира пересчитывается целиком.
func (h *SchoolHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.standingService.GetTeamStatistics(r.Context(), tournamentID, schoolID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
