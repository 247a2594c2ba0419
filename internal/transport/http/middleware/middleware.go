// middleware — сквозные аспекты HTTP-запроса: перехват паник, request-id,
// request-scoped логирование, дедлайны и проверка access-токена/прав.
package middleware

import (
	"net/http"
)

// Middleware — стандартная net/http обёртка над обработчиком.
type Middleware func(http.Handler) http.Handler

// Chain навешивает мидлвары на обработчик; первый в списке оказывается
// самым внешним (выполняется раньше остальных).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter перехватывает код ответа и число записанных байт
// для итоговой записи мидлвара Logging.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	// Write без явного WriteHeader означает 200.
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}
