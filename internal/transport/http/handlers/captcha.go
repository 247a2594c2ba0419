package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/MarkSmithYang/auth-gateway/internal/errors"
)

type captchaResponse struct {
	// Image — PNG как data-URL (data:image/png;base64,...).
	Image string `json:"image"`
	// Signature возвращается клиентом вместе с ответом на капчу.
	Signature string `json:"signature"`
}

type checkCaptchaRequest struct {
	Answer    string `json:"answer"`
	Signature string `json:"signature"`
}

type checkCaptchaResponse struct {
	OK bool `json:"ok"`
}

// Captcha генерирует новую капчу. Размеры изображения можно переопределить
// query-параметрами width/height; нечисловые значения игнорируются.
func (h *Handlers) Captcha(w http.ResponseWriter, r *http.Request) {
	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))

	challenge, err := h.Auth.Captcha(width, height)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, captchaResponse{
		Image:     challenge.Image,
		Signature: challenge.Signature,
	})
}

// CheckCaptcha проверяет ответ на капчу против подписи.
// Неверная пара — это {"ok": false}, а не ошибка вызова.
func (h *Handlers) CheckCaptcha(w http.ResponseWriter, r *http.Request) {
	var in checkCaptchaRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, checkCaptchaResponse{
		OK: h.Auth.CheckCaptcha(in.Answer, in.Signature),
	})
}
