package models

// Identity - текущий аутентифицированный пользователь. Нулевое значение означает "нет пользователя".
type Identity struct {
	UserID string
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}
