package models

// Challenge — одноразовая визуальная проверка (капча) без серверного состояния.
//
// Описание:
//   - Image — отрисованная картинка с кодом, base64 data-URL (PNG);
//   - Signature — bcrypt-подпись над (константный заголовок + код в верхнем
//     регистре). Сам код на сервере не хранится: проверка сводится к
//     пересчёту хэша по коду, который клиент вернул вместе с подписью.
type Challenge struct {
	// Image — картинка с кодом в формате data:image/png;base64,...
	Image string
	// Signature — bcrypt-хэш, по которому проверяется введённый код.
	Signature string
}
