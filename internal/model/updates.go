package model

// Updatable user fields, in the order they are validated and written.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
)

// UpdateFields lists every field a partial update may touch.
var UpdateFields = []string{FieldEmail, FieldUsername, FieldPassword}

// Updates maps a whitelisted field name to its new value.
type Updates map[string]string

// Allowed reports whether field may appear in Updates.
func Allowed(field string) bool {
	for _, f := range UpdateFields {
		if f == field {
			return true
		}
	}
	return false
}
