package handlers

import (
	"net"
	"net/http"
	"strings"
)

// clientIP определяет адрес клиента с учётом реверс-прокси:
//  1. первый адрес из X-Forwarded-For;
//  2. X-Real-Ip;
//  3. RemoteAddr без порта.
//
// Адрес входит в throttle-ключ, поэтому заголовкам доверяем только если
// шлюз стоит за доверенным прокси; напрямую из интернета их может
// подставить сам клиент.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if rip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); rip != "" {
		return rip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
