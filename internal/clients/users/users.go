// users — HTTP-клиент сервиса учётных записей: единственный внешний
// коллаборатор шлюза, проверяющий пару логин/пароль.
//
// Клиент реализует service.CredentialVerifier. Ретраев нет намеренно:
// повтор проверки логина рискует продублировать side-эффекты на стороне
// сервиса учётных записей (аудит, собственные счётчики попыток).
package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MarkSmithYang/auth-gateway/internal/pkg/log"
	"github.com/MarkSmithYang/auth-gateway/internal/pkg/redact"
	"github.com/MarkSmithYang/auth-gateway/internal/service"
)

// Client — HTTP-обёртка над сервисом учётных записей.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New создаёт клиент. Пустой timeout означает таймаут по умолчанию (5s);
// дополнительно действует deadline из контекста запроса.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Channel  string `json:"channel"`
}

type verifyResponse struct {
	OK          bool     `json:"ok"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

// Verify проверяет учётные данные через POST {baseURL}/verify.
//
// Семантика ответов:
//   - 200 — ответ разобран, поле ok решает исход проверки;
//   - любой другой статус — сбой коллаборатора, возвращается как ошибка
//     (не как «неверный пароль»: сбой не должен инкрементировать счётчик
//     неудачных входов).
func (c *Client) Verify(ctx context.Context, username, password, channel string) (*service.VerifiedUser, bool, error) {
	const op = "clients.users.Verify"

	// Учётные данные уходят только коллаборатору, в логах — маски.
	log.From(ctx).Debug("verifying credentials",
		"username", redact.Username(username),
		"password", redact.Password(),
		"channel", channel,
	)

	body, err := json.Marshal(verifyRequest{
		Username: username,
		Password: password,
		Channel:  channel,
	})
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("%s: decode response: %w", op, err)
	}

	if !out.OK {
		return nil, false, nil
	}

	user := &service.VerifiedUser{
		Username:    out.Username,
		Permissions: out.Permissions,
	}
	// Коллаборатор мог не вернуть каноническое имя — используем введённое.
	if user.Username == "" {
		user.Username = username
	}

	return user, true, nil
}
