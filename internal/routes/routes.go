// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/config"
	"github.com/jenny-yujl/marketingTrain/internal/handlers"
	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	appmw "github.com/jenny-yujl/marketingTrain/internal/middleware"
	"github.com/jenny-yujl/marketingTrain/internal/services"
)

// Deps is everything the router wires into handlers. Uploader may be nil,
// in which case POST /api/products/images is not registered.
type Deps struct {
	Store    interfaces.Storage
	Cfg      *config.Config
	Logger   *zap.Logger
	Events   services.EventPublisher
	Uploader handlers.ObjectUploader
}

func SetupRoutes(deps Deps) *chi.Mux {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Events == nil {
		deps.Events = services.NoopPublisher{}
	}
	if deps.Cfg == nil {
		deps.Cfg = &config.Config{}
	}
	base := handlers.NewBaseHandler(deps.Logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(deps.Cfg.CORSAllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"campaign api"}`))
	})

	// Health check
	r.Get("/health", handlers.NewHealthHandler(base, deps.Store).Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(appmw.RequestLogger(deps.Logger))

		// Image uploads get their own, larger limit.
		if deps.Uploader != nil {
			images := handlers.NewImageHandler(base, deps.Uploader)
			r.With(appmw.BodyLimit(handlers.MaxImageBytes)).Post("/products/images", images.UploadProductImage)
		}

		r.Group(func(r chi.Router) {
			r.Use(appmw.BodyLimit(deps.Cfg.MaxBodyBytes))
			RegisterCampaignRoutes(r, handlers.NewCampaignHandler(base, deps.Store, deps.Events))
			RegisterProductRoutes(r, handlers.NewProductHandler(base, deps.Store))
		})
	})

	RegisterSwaggerRoutes(r)

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func RegisterCampaignRoutes(router chi.Router, h *handlers.CampaignHandler) {
	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", h.ListCampaigns)
		r.Post("/", h.CreateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCampaign)
			r.Put("/", h.UpdateCampaign)
			r.Delete("/", h.DeleteCampaign)
		})
	})
}

// RegisterProductRoutes mounts the catalogue. Products have no update or
// delete.
func RegisterProductRoutes(router chi.Router, h *handlers.ProductHandler) {
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
	})
}
