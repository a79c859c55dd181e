package routes

import (
	"github.com/bombers-fc/club-manager/handlers"
	authmw "github.com/bombers-fc/club-manager/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every endpoint onto the router. Everything except login
// sits behind the session-cookie gate (which is a no-op when no club password
// is configured).
func SetupRoutes(
	router *chi.Mux,
	authenticator *authmw.Authenticator,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	paymentHandler *handlers.PaymentHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/logout", authHandler.Logout)

	router.Group(func(r chi.Router) {
		r.Use(authenticator.Authenticate)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Post("/", playerHandler.CreatePlayer)
			r.Get("/{playerID}", playerHandler.GetPlayer)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
			r.Put("/{playerID}/photo", playerHandler.UploadPlayerPhoto)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.ListMatches)
			r.Post("/", matchHandler.CreateMatch)
			r.Get("/{matchID}", matchHandler.GetMatch)
			r.Put("/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
			r.Put("/{matchID}/teams", matchHandler.AssignTeams)
			r.Post("/{matchID}/randomize", matchHandler.RandomizeTeams)
			r.Put("/{matchID}/winner", matchHandler.SetWinner)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", paymentHandler.ListPayments)
			r.Get("/matrix", paymentHandler.GetPaymentMatrix)
			r.Put("/{playerID}/{matchID}", paymentHandler.SetPaymentPaid)
			r.Post("/{playerID}/mark-all-paid", paymentHandler.MarkAllPaid)
		})

		r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
		r.Get("/ws", webSocketHandler.ServeWs)
	})
}
