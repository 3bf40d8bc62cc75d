package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oflinehulk/showyours-core/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	bracketHandler *handlers.BracketHandler,
	seedingHandler *handlers.SeedingHandler,
	standingsHandler *handlers.StandingsHandler,
	scheduleHandler *handlers.ScheduleHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Post("/bracket", bracketHandler.Generate)
		r.Get("/bracket", bracketHandler.Get)

		r.Post("/groups", seedingHandler.AssignGroups)
		r.Post("/groups/pots", seedingHandler.DrawByPots)
		r.Post("/coinflip", seedingHandler.CoinFlip)
		r.Get("/draws", seedingHandler.ListDraws)

		r.Post("/schedule", scheduleHandler.AutoSchedule)
	})

	router.Get("/groups/{groupID}/standings", standingsHandler.Get)

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
