package routes

import (
	"itembox/itembox/controllers"
	"itembox/itembox/middlewares"
	"itembox/itembox/security"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth   *controllers.AuthController
	Items  *controllers.ItemsController
	Images *controllers.ImagesController
	Health *controllers.HealthController

	Tokens *security.TokenManager
	Users  middlewares.UserLookup
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", HealthRoutes(h.Health))

	r.Route("/api", func(api chi.Router) {
		AuthRoutes(api, h.Auth)

		api.Group(func(gr chi.Router) {
			gr.Use(middlewares.AuthMiddleware(h.Tokens, h.Users))
			UserRoutes(gr)
			ItemsRoutes(gr, h.Items)
			ImagesRoutes(gr, h.Images)
		})
	})
	return r
}
