package service

// HasPermission сообщает, входит ли требуемое право в набор прав субъекта.
// Пустое требование разрешено любому аутентифицированному субъекту.
// Сравнение точное, без иерархий и масок.
func HasPermission(permissions []string, required string) bool {
	if required == "" {
		return true
	}

	for _, p := range permissions {
		if p == required {
			return true
		}
	}

	return false
}
