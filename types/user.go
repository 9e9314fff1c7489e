package types

// User is a registered member. PasswordHash is the bcrypt hash stored in the
// fixed-width password column and is never rendered.
type User struct {
	ID           int    `json:"id"`
	FullName     string `json:"fullname"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	PasswordHash string `json:"-"`
}
