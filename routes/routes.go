package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/schoolcup/tournament-backend/handlers"
	"github.com/schoolcup/tournament-backend/middleware"
	"github.com/schoolcup/tournament-backend/models"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes собирает все маршруты приложения. Просмотр турниров, таблиц и
// статистики публичный; изменения требуют JWT и роли организатора или админа.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	schoolHandler *handlers.SchoolHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	playerHandler *handlers.PlayerHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Get("/me", userHandler.GetCurrentUser)
		r.Get("/{userID}", userHandler.GetUser)
	})

	router.Route("/schools", func(r chi.Router) {
		r.Get("/", schoolHandler.ListSchools)
		r.Get("/{schoolID}", schoolHandler.GetSchool)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))

			r.Post("/", schoolHandler.CreateSchool)
			r.Post("/{schoolID}/shield", schoolHandler.UploadShield)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.ListTournaments)
		r.Get("/{tournamentID}", tournamentHandler.GetTournament)
		r.Get("/{tournamentID}/phases", tournamentHandler.ListPhases)
		r.Get("/{tournamentID}/table", tournamentHandler.GetGeneralTable)
		r.Get("/{tournamentID}/search", tournamentHandler.Search)
		r.Get("/{tournamentID}/schools/{schoolID}/statistics", schoolHandler.GetStatistics)
		r.Get("/{tournamentID}/matches", matchHandler.ListMatches)
		r.Get("/{tournamentID}/players", playerHandler.ListPlayersByTournament)

		// Защищённые маршруты только для организаторов и админов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))

			r.Post("/", tournamentHandler.CreateTournament)
			r.Put("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournament)

			r.Post("/{tournamentID}/schools", schoolHandler.RegisterInTournament)
			r.Post("/{tournamentID}/matches", matchHandler.CreateMatch)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatch)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))

			r.Put("/{matchID}/result", matchHandler.RecordResult)
			r.Post("/{matchID}/goals", matchHandler.AddGoal)
			r.Post("/{matchID}/green-cards", matchHandler.AddGreenCard)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}/players", playerHandler.ListPlayersByTeam)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))

			r.Post("/{teamID}/players", playerHandler.AddPlayerToTeam)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.SubscribeTournament)
}
