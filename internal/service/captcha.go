package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/MarkSmithYang/auth-gateway/internal/models"
	"github.com/mojocn/base64Captcha"
	"golang.org/x/crypto/bcrypt"
)

// codeHeader подмешивается в подписываемую строку, чтобы подпись нельзя
// было построить по одному только коду без знания константы сервера.
const codeHeader = "ae81cac2"

// captchaAlphabet — без визуально неоднозначных символов (0/O, 1/I и т. п.).
const captchaAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// generateCode возвращает криптографически случайный код капчи заданной
// длины из captchaAlphabet.
func generateCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)

	max := big.NewInt(int64(len(captchaAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(captchaAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// signCode строит bcrypt-подпись кода. Код приводится к верхнему регистру,
// поэтому проверка ответа регистронезависима.
func (s *Service) signCode(code string) (string, error) {
	payload := codeHeader + strings.ToUpper(code)

	hash, err := bcrypt.GenerateFromPassword([]byte(payload), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Captcha генерирует новую капчу: PNG-изображение с кодом и подпись кода.
// Сервер не хранит выданные коды — проверка целиком опирается на подпись,
// которую клиент возвращает вместе с ответом (stateless-схема).
//
// Неположительные width/height заменяются значениями из конфигурации.
func (s *Service) Captcha(width, height int) (models.Challenge, error) {
	const op = "service.captcha.Captcha"

	if width <= 0 {
		width = s.cfg.Captcha.Width
	}
	if height <= 0 {
		height = s.cfg.Captcha.Height
	}

	code, err := generateCode(s.cfg.Captcha.CodeLength)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("%s: %w", op, err)
	}

	driver := base64Captcha.NewDriverString(
		height, width, 0, base64Captcha.OptionShowHollowLine,
		s.cfg.Captcha.CodeLength, captchaAlphabet, nil, nil, nil,
	).ConvertFonts()

	item, err := driver.DrawCaptcha(code)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("%s: %w", op, err)
	}

	signature, err := s.signCode(code)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Challenge{
		Image:     item.EncodeB64string(),
		Signature: signature,
	}, nil
}

// CheckCaptcha проверяет ответ пользователя против подписи, выданной
// вместе с изображением. Регистр ответа не важен. Ошибок не возвращает:
// любая невалидная пара (ответ, подпись) — это просто false.
func (s *Service) CheckCaptcha(answer, signature string) bool {
	if answer == "" || signature == "" {
		return false
	}

	payload := codeHeader + strings.ToUpper(answer)

	return bcrypt.CompareHashAndPassword([]byte(signature), []byte(payload)) == nil
}
