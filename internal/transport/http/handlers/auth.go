package handlers

import (
	"net/http"
	"strings"
	"time"

	apierrors "github.com/MarkSmithYang/auth-gateway/internal/errors"
	"github.com/MarkSmithYang/auth-gateway/internal/models"
	"github.com/MarkSmithYang/auth-gateway/internal/transport/http/middleware"
)

// loginRequest — тело front-login/back-login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse — пара токенов. Оба токена отдаются с префиксом схемы
// (по умолчанию "Bearer "), чтобы клиент мог подставить значение в
// Authorization как есть. ExpiresIn — секунды до истечения access-токена.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type validateRequest struct {
	AccessToken string `json:"access_token"`
}

type validateResponse struct {
	Valid       bool     `json:"valid"`
	Username    string   `json:"username,omitempty"`
	Channel     string   `json:"channel,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// FrontLogin — вход пользовательского канала.
func (h *Handlers) FrontLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.ChannelFront)
}

// BackLogin — вход административного канала.
func (h *Handlers) BackLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.ChannelBack)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request, channel string) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	pair, err := h.Auth.Login(r.Context(), in.Username, in.Password, clientIP(r), channel)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.tokenResponse(pair))
}

// Refresh выпускает новый access-токен по refresh-токену.
// Принимает токен как с префиксом схемы, так и без него.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	pair, err := h.Auth.Refresh(h.stripPrefix(in.RefreshToken))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.tokenResponse(pair))
}

// Validate проверяет access-токен и возвращает зашитые в него личность
// и права. Невалидный токен — это не ошибка вызова, а {"valid": false}:
// эндпоинт служит другим сервисам для интроспекции.
func (h *Handlers) Validate(w http.ResponseWriter, r *http.Request) {
	var in validateRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	identity, perms, err := h.Auth.ValidateAccessToken(h.stripPrefix(in.AccessToken))
	if err != nil {
		writeJSON(w, http.StatusOK, validateResponse{Valid: false})
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:       true,
		Username:    identity.Username,
		Channel:     identity.Channel,
		Permissions: perms,
	})
}

// Me возвращает личность и права текущего субъекта из access-токена.
// Защищён мидлваром Authenticate.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrForbidden)
		return
	}

	perms, _ := middleware.PermissionsFrom(r.Context())

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:       true,
		Username:    identity.Username,
		Channel:     identity.Channel,
		Permissions: perms,
	})
}

// Users — выборка учётных сведений; доступна только субъектам с правом
// query (проверяется мидлваром RequirePermission на маршруте). Шлюз не
// хранит учётные записи, поэтому отдаёт сведения из предъявленного токена.
func (h *Handlers) Users(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrForbidden)
		return
	}

	perms, _ := middleware.PermissionsFrom(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"users": []validateResponse{{
			Valid:       true,
			Username:    identity.Username,
			Channel:     identity.Channel,
			Permissions: perms,
		}},
	})
}

func (h *Handlers) tokenResponse(pair models.TokenPair) tokenResponse {
	prefix := h.Cfg.Auth.TokenPrefix
	if prefix != "" {
		prefix += " "
	}

	return tokenResponse{
		AccessToken:  prefix + pair.AccessToken,
		RefreshToken: prefix + pair.RefreshToken,
		ExpiresIn:    int64(time.Until(pair.AccessExpiresAt).Seconds()),
	}
}

// stripPrefix убирает префикс схемы ("Bearer ") из входящего токена.
func (h *Handlers) stripPrefix(token string) string {
	prefix := h.Cfg.Auth.TokenPrefix
	if prefix == "" {
		return token
	}

	return strings.TrimSpace(strings.TrimPrefix(token, prefix+" "))
}
