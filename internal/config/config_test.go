package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "6000"
auth:
  jwt_secret: "super-secret"
  access_token_ttl: "10m"
  refresh_token_ttl: "240h"
  issuer: "issuerX"
  audience: ["api-gateway", "web"]
  token_prefix: "Token"
throttle:
  max_login_attempts: 3
  lockout_window: "20m"
  key_prefix: "lf:"
captcha:
  code_length: 5
  width: 200
  height: 60
redis:
  redis_url: "redis://localhost:6379/0"
verifier:
  url: "http://users.internal:8080"
timeouts:
  service: "3s"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
auth:
  jwt_secret: "min-secret"
redis:
  redis_url: "redis://localhost:6379/1"
verifier:
  url: "http://localhost:9000"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
auth:
  jwt_secret: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	require.Equal(t, "6000", cfg.HTTP.Port)
	require.Equal(t, "127.0.0.1:6000", cfg.HTTP.Addr())

	require.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 240*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, "issuerX", cfg.Auth.Issuer)
	require.ElementsMatch(t, []string{"api-gateway", "web"}, cfg.Auth.Audience)
	require.Equal(t, "Token", cfg.Auth.TokenPrefix)

	require.Equal(t, 3, cfg.Throttle.MaxLoginAttempts)
	require.Equal(t, 20*time.Minute, cfg.Throttle.LockoutWindow)
	require.Equal(t, "lf:", cfg.Throttle.KeyPrefix)

	require.Equal(t, 5, cfg.Captcha.CodeLength)
	require.Equal(t, 200, cfg.Captcha.Width)
	require.Equal(t, 60, cfg.Captcha.Height)

	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.RedisURL)
	require.Equal(t, "http://users.internal:8080", cfg.Verifier.URL)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_Defaults_FromMinimalYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "minimal.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, "auth-gateway", cfg.Auth.Issuer)
	require.Equal(t, "Bearer", cfg.Auth.TokenPrefix)

	require.Equal(t, 5, cfg.Throttle.MaxLoginAttempts)
	require.Equal(t, 15*time.Minute, cfg.Throttle.LockoutWindow)
	require.Equal(t, "login:fail:", cfg.Throttle.KeyPrefix)

	require.Equal(t, 4, cfg.Captcha.CodeLength)
	require.Equal(t, 110, cfg.Captcha.Width)
	require.Equal(t, 34, cfg.Captcha.Height)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "min-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "redis://localhost:6379/1", cfg.Redis.RedisURL)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)

	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "super-secret", cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("JWT_SECRET", "env-wins")
	t.Setenv("MAX_LOGIN_ATTEMPTS", "7")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "env-wins", cfg.Auth.JWTSecret)
	require.Equal(t, 7, cfg.Throttle.MaxLoginAttempts)
}

func TestLoad_EnvOnly_RequiredMissing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir) // в пустой директории нет local.yaml.

	t.Setenv("CONFIG_PATH", "")

	// t.Setenv регистрирует восстановление исходного значения,
	// сами переменные убираем: пустая строка для cleanenv — «задана».
	for _, name := range []string{"JWT_SECRET", "REDIS_URL", "VERIFIER_URL"} {
		t.Setenv(name, "x")
		require.NoError(t, os.Unsetenv(name))
	}

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("VERIFIER_URL", "http://localhost:9100")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "redis://localhost:6379/2", cfg.Redis.RedisURL)
	require.Equal(t, "http://localhost:9100", cfg.Verifier.URL)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
