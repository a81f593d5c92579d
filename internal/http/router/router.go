package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Zecser/Catering-and-Tourism/internal/http/handler"
	"github.com/Zecser/Catering-and-Tourism/internal/http/middleware"
	"github.com/Zecser/Catering-and-Tourism/internal/security"
)

type Dependencies struct {
	Logger         *slog.Logger
	JWTManager     *security.JWTManager
	AuthHandler    *handler.AuthHandler
	BlogHandler    *handler.BlogHandler
	GalleryHandler *handler.GalleryHandler
	ContactHandler *handler.ContactHandler
	Limiter        middleware.Limiter
	LimiterMode    middleware.FailureMode

	CORSOrigins      []string
	AuthRateLimitRPM int
	APIRateLimitRPM  int
}

func New(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(dep.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(dep.CORSOrigins))

	authLimit := middleware.NewRateLimiter(dep.Limiter, dep.AuthRateLimitRPM, time.Minute, dep.LimiterMode)
	apiLimit := middleware.NewRateLimiter(dep.Limiter, dep.APIRateLimitRPM, time.Minute, dep.LimiterMode)
	requireAuth := middleware.RequireAuth(dep.JWTManager)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Hai there, API is running..."))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Use(authLimit.Middleware())
			auth.Post("/signup", dep.AuthHandler.Signup)
			auth.Post("/admin-signup", dep.AuthHandler.AdminSignup)
			auth.Post("/login", dep.AuthHandler.Login)
			auth.Post("/refresh", dep.AuthHandler.Refresh)
			auth.Post("/forgot-password", dep.AuthHandler.ForgotPassword)
			auth.Post("/verify-otp", dep.AuthHandler.VerifyOTP)
			auth.Post("/reset-password", dep.AuthHandler.ResetPassword)
			auth.Post("/logout", dep.AuthHandler.Logout)
			auth.With(requireAuth).Get("/me", dep.AuthHandler.Me)
		})

		api.Route("/blogs", func(blogs chi.Router) {
			blogs.Use(apiLimit.Middleware())
			blogs.Get("/", dep.BlogHandler.List)
			blogs.Get("/{id}", dep.BlogHandler.Get)
			blogs.Group(func(admin chi.Router) {
				admin.Use(requireAuth, middleware.RequireAdmin)
				admin.Post("/", dep.BlogHandler.Create)
				admin.Put("/{id}", dep.BlogHandler.Update)
				admin.Delete("/{id}", dep.BlogHandler.Delete)
			})
		})

		api.Route("/gallery", func(gallery chi.Router) {
			gallery.Use(apiLimit.Middleware())
			gallery.Get("/", dep.GalleryHandler.List)
			gallery.Group(func(admin chi.Router) {
				admin.Use(requireAuth, middleware.RequireAdmin)
				admin.Post("/", dep.GalleryHandler.Upload)
				admin.Delete("/{id}", dep.GalleryHandler.Delete)
			})
		})

		api.With(apiLimit.Middleware()).Post("/contact", dep.ContactHandler.Submit)
	})

	return r
}
