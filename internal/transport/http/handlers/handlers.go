package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MarkSmithYang/auth-gateway/internal/config"
	"github.com/MarkSmithYang/auth-gateway/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	Auth *service.Service
	Cfg  *config.Config
}

func New(auth *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{Auth: auth, Cfg: cfg}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
