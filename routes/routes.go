package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sump-exe/Sports-Game-Management/handlers"
	"github.com/sump-exe/Sports-Game-Management/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Teams       *handlers.TeamHandler
	Venues      *handlers.VenueHandler
	Games       *handlers.GameHandler
	Scoring     *handlers.ScoringHandler
	Standings   *handlers.StandingsHandler
	Eligibility *handlers.EligibilityHandler
	MVPs        *handlers.MVPHandler
	Summary     *handlers.SummaryHandler
	WebSocket   *handlers.WebSocketHandler
}

// SetupRoutes wires the HTTP surface. Reads are public, everything that
// mutates sits behind the admin token.
func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/login", h.Auth.Login)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Teams.ListTeams)
		r.Get("/{teamID}", h.Teams.GetTeam)
		r.Get("/{teamID}/roster", h.Teams.Roster)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Teams.CreateTeam)
			r.Put("/{teamID}", h.Teams.RenameTeam)
			r.Delete("/{teamID}", h.Teams.DeleteTeam)
			r.Post("/{teamID}/roster", h.Teams.AddPlayer)
			r.Post("/{teamID}/logo", h.Teams.UploadLogo)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/{playerID}", h.Teams.UpdatePlayer)
			r.Delete("/{playerID}", h.Teams.RemovePlayer)
		})
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", h.Venues.ListVenues)
		r.Get("/{venueID}", h.Venues.GetVenue)
		r.Get("/{venueID}/schedule", h.Venues.DaySchedule)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Venues.CreateVenue)
			r.Put("/{venueID}", h.Venues.UpdateVenue)
			r.Delete("/{venueID}", h.Venues.DeleteVenue)
			r.Post("/{venueID}/logo", h.Venues.UploadLogo)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", h.Games.ListGames)
		r.Get("/{gameID}", h.Games.GetGame)
		r.Get("/{gameID}/stats", h.Games.GameStats)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Games.ScheduleGame)
			r.Put("/{gameID}", h.Games.RescheduleGame)
			r.Delete("/{gameID}", h.Games.DeleteGame)
			r.Post("/{gameID}/points", h.Scoring.AddPoints)
			r.Post("/{gameID}/end", h.Scoring.EndGame)
		})
	})

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", h.Standings.SeasonStartYears)
		r.Get("/standings", h.Standings.SeasonStandings)
		r.Get("/summary", h.Summary.SeasonSummary)
		r.Get("/play-in", h.Eligibility.PlayInState)
		r.Get("/play-in/opponents", h.Eligibility.ValidOpponents)
		r.Get("/playoff-candidates", h.Eligibility.PlayoffCandidates)
		r.Get("/finals-candidates", h.Eligibility.FinalsCandidates)
	})

	router.Route("/mvps", func(r chi.Router) {
		r.Get("/", h.MVPs.ListMVPs)
		r.Get("/{year}", h.MVPs.GetMVP)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.MVPs.AssignMVP)
			r.Delete("/{year}", h.MVPs.ClearMVP)
		})
	})

	router.Get("/ws/games/{gameID}", h.WebSocket.ServeGame)
	router.Get("/ws/season", h.WebSocket.ServeSeason)

	return router
}
