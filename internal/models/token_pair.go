package models

import "time"

// TokenPair — пара токенов, выдаваемая при успешном входе или рефреше.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API;
//   - RefreshToken — долгоживущий подписанный JWT, единственная задача
//     которого — восстановить идентичность для выпуска нового access-токена;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
//
// Серверного хранилища сессий нет: пара становится недействительной только
// по подписи/сроку. Отзыв до истечения невозможен — цена за stateless-дизайн,
// компенсируется коротким TTL access-токена.
type TokenPair struct {
	// AccessToken — JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — подписанный JWT для обновления пары.
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}
