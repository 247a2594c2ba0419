// redact — маскировка чувствительных значений в логах.
package redact

// Username маскирует имя пользователя: первые два символа + «***».
// Полное имя в логи не попадает, чтобы по ним нельзя было перечислять
// аккаунты.
func Username(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}

// IP маскирует адрес клиента целиком: в логах он нужен только как признак
// «был/не был», throttle-ключи по нему не восстанавливаются.
func IP() string { return "[REDACTED_IP]" }

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
