package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MarkSmithYang/auth-gateway/internal/config"
	"github.com/MarkSmithYang/auth-gateway/internal/service"
	"github.com/MarkSmithYang/auth-gateway/internal/transport/http/handlers"
	"github.com/MarkSmithYang/auth-gateway/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/v1"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(auth *service.Service, cfg *config.Config, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(auth, cfg)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, auth)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, auth)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth *service.Service) {
	// Публичные эндпоинты аутентификации.
	r.Post("/auth/front-login", h.FrontLogin)
	r.Post("/auth/back-login", h.BackLogin)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/validate", h.Validate)

	// Капча.
	r.Get("/auth/captcha", h.Captcha)
	r.Post("/auth/check-captcha", h.CheckCaptcha)

	// Защищённая группа: любой валидный access-токен.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Authenticate(auth))
		pr.Get("/api/me", h.Me)

		// Эндпоинты, требующие отдельного права.
		pr.Group(func(qr chi.Router) {
			qr.Use(middleware.RequirePermission("query"))
			qr.Get("/api/users", h.Users)
		})
	})
}
