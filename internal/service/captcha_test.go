package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	code, err := generateCode(4)
	require.NoError(t, err)
	require.Len(t, code, 4)

	for _, c := range code {
		require.Contains(t, captchaAlphabet, string(c))
	}
}

func TestCheckCaptcha_SignatureFormat(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	// Подпись строится над codeHeader + код в верхнем регистре.
	sig, err := bcrypt.GenerateFromPassword([]byte("ae81cac2A1B2"), bcrypt.DefaultCost)
	require.NoError(t, err)

	require.True(t, svc.CheckCaptcha("A1B2", string(sig)))
	// Регистр ответа не важен.
	require.True(t, svc.CheckCaptcha("a1b2", string(sig)))
	require.False(t, svc.CheckCaptcha("A1B3", string(sig)))
}

func TestCheckCaptcha_EmptyInputs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	require.False(t, svc.CheckCaptcha("", "whatever"))
	require.False(t, svc.CheckCaptcha("A1B2", ""))
	require.False(t, svc.CheckCaptcha("A1B2", "not-a-bcrypt-hash"))
}

func TestCaptcha_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	challenge, err := svc.Captcha(0, 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(challenge.Image, "data:image/png;base64,"))
	require.NotEmpty(t, challenge.Signature)

	// Кода в открытом виде сервер не возвращает, но подпись должна
	// отклонять заведомо чужой ответ.
	require.False(t, svc.CheckCaptcha("!!!!", challenge.Signature))
}

func TestCaptcha_CustomSize(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, nil, testConfig())

	challenge, err := svc.Captcha(200, 60)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(challenge.Image, "data:image/png;base64,"))
}
