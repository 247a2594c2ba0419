package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"xff single", "1.2.3.4", "", "9.9.9.9:1234", "1.2.3.4"},
		{"xff chain takes first", "1.2.3.4, 10.0.0.1, 10.0.0.2", "", "9.9.9.9:1234", "1.2.3.4"},
		{"xff with spaces", "  1.2.3.4 , 10.0.0.1", "", "9.9.9.9:1234", "1.2.3.4"},
		{"real-ip fallback", "", "5.6.7.8", "9.9.9.9:1234", "5.6.7.8"},
		{"remote addr", "", "", "9.9.9.9:1234", "9.9.9.9"},
		{"remote addr without port", "", "", "9.9.9.9", "9.9.9.9"},
		{"ipv6 remote addr", "", "", "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "/auth/front-login", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-Ip", tc.realIP)
			}

			require.Equal(t, tc.want, clientIP(req))
		})
	}
}
