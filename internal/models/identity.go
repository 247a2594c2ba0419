package models

// Каналы входа. Канал не участвует в throttle-ключе, но кодируется
// в claims токена, чтобы фронтовые токены нельзя было предъявить бэк-офису.
const (
	// ChannelFront — вход через публичный (фронтовый) контур.
	ChannelFront = "front"
	// ChannelBack — вход через административный (бэковый) контур.
	ChannelBack = "back"
)

// Identity — идентичность клиента в рамках одного запроса.
//
// Описание:
//   - Username — имя пользователя, как его подтвердил внешний верификатор;
//   - IP — исходный адрес клиента (участвует в throttle-ключе и claims);
//   - Channel — канал входа (front/back).
//
// Identity живёт только в пределах запроса и в claims токенов;
// ядро её нигде не персистит.
type Identity struct {
	Username string
	IP       string
	Channel  string
}
