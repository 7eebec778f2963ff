package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/http-swagger"

	"github.com/vntrieu/darts/internal/httpapi/handler"
	"github.com/vntrieu/darts/internal/ratelimit"
	"github.com/vntrieu/darts/internal/websocket"

	_ "github.com/vntrieu/darts/docs" // swagger spec
)

// Deps are the collaborators served by the router.
type Deps struct {
	// Session is the active match; it also backs the input WebSocket.
	Session handler.Session
	Players handler.PlayerCreator
	Hub     *websocket.Hub
	// Limiter guards match creation and WebSocket connects. Nil disables limiting.
	Limiter     ratelimit.Limiter
	CORSOrigins []string
}

// NewRouter builds the root HTTP router.
//
// @title            Darts API
// @version          1.0
// @description      Scoring for x01, round the clock and killer matches.
// @BasePath         /
func NewRouter(deps Deps) http.Handler {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handler.Healthz)

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	wsHandler := websocket.NewWSHandler(deps.Hub, deps.Session, limiter, origins)
	r.Get("/ws/scoreboard", wsHandler.HandleScoreboard)

	rateLimitByIP := RateLimitMiddleware(limiter, RateLimitKeyByIP)

	playerHandler := handler.NewPlayerHandler(deps.Players)
	r.With(LimitRequestBody(DefaultMaxBodyBytes)).Post("/api/players", playerHandler.CreatePlayer)

	gameHandler := handler.NewGameHandler(deps.Session)
	r.Route("/api/games", func(r chi.Router) {
		r.Use(LimitRequestBody(DefaultMaxBodyBytes))
		r.With(rateLimitByIP).Post("/", gameHandler.CreateGame)
		r.Get("/variants", gameHandler.ListVariants)

		r.Route("/current", func(r chi.Router) {
			r.Get("/", gameHandler.GetCurrent)
			r.Post("/throws", gameHandler.RecordThrow)
			r.Post("/undo", gameHandler.UndoThrow)
			r.Post("/finalize", gameHandler.Finalize)
		})
	})

	return r
}
