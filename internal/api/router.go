package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"studyhelp.app/backend/internal/auth"
)

type RouterOptions struct {
	AllowedOrigins []string
	// UploadDir, when set, is served under /uploads.
	UploadDir   string
	RateLimiter *IPRateLimiter
	Metrics     *Metrics
}

func NewRouter(apiHandler *APIHandler, verifier auth.Verifier, log *zap.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}

		// Catalog routes are public.
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", apiHandler.ListCoursesHandler)
			r.Route("/{courseID}", func(r chi.Router) {
				r.Get("/", apiHandler.GetCourseHandler)
				r.Post("/", apiHandler.CreateCourseHandler)
				r.Put("/", apiHandler.UpdateCourseHandler)
				r.Delete("/", apiHandler.DeleteCourseHandler)

				r.Route("/disciplines", func(r chi.Router) {
					r.Get("/", apiHandler.ListDisciplinesHandler)
					r.Get("/{disciplineID}", apiHandler.GetDisciplineHandler)
					r.Post("/{disciplineID}", apiHandler.CreateDisciplineHandler)
					r.Put("/{disciplineID}", apiHandler.UpdateDisciplineHandler)
					r.Delete("/{disciplineID}", apiHandler.DeleteDisciplineHandler)
				})
			})
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(verifier, log))

			r.Route("/chat", func(r chi.Router) {
				r.Post("/create", apiHandler.CreateChatHandler)
				r.Get("/user/{userID}", apiHandler.ListUserChatsHandler)
				r.Get("/messages/{chatID}", apiHandler.ListMessagesHandler)
				r.Post("/send/{chatID}", apiHandler.SendMessageHandler)
			})

			r.Route("/user", func(r chi.Router) {
				r.Post("/create", apiHandler.CreateProfileHandler)
				r.Get("/me", apiHandler.GetMeHandler)
				r.Put("/me", apiHandler.UpdateMeHandler)
				r.Get("/helpers", apiHandler.HelpersHandler)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/helpers", apiHandler.HelpersHandler)
				r.Get("/public", apiHandler.PublicProfilesHandler)
			})
		})
	})

	return r
}
