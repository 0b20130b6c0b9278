// File: internal/model/user.go
package model

import "time"

// User 對應 users 資料表的一列，Password 僅存放 bcrypt 哈希
type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"password" json:"-"`
	RegisterDate time.Time `db:"register_date" json:"register_date"`
}

// UnregisteredUser 建立或完整更新使用者時的輸入
// swagger:model model.UnregisteredUser
type UnregisteredUser struct {
	Username string `json:"username" example:"alice_01"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Secret123!"`
}

// RegisteredUser 使用者的唯讀投影，不含密碼
// swagger:model model.RegisteredUser
type RegisteredUser struct {
	ID           int       `json:"id" example:"1"`
	Username     string    `json:"username" example:"alice_01"`
	Email        string    `json:"email" example:"alice@example.com"`
	RegisterDate time.Time `json:"register_date" example:"2025-05-01T15:04:05Z"`
}

// UpdateUser 部分更新的輸入，nil 代表未提供
// swagger:model model.UpdateUser
type UpdateUser struct {
	Username *string `json:"username,omitempty" example:"alice_02"`
	Email    *string `json:"email,omitempty" example:"alice@example.org"`
	Password *string `json:"password,omitempty" example:"NewSecret123!"`
}

// Projection drops the password hash.
func (u *User) Projection() RegisteredUser {
	return RegisteredUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		RegisterDate: u.RegisterDate,
	}
}

// Updates returns every field of u, as written by a full update.
func (u UnregisteredUser) Updates() Updates {
	return Updates{
		FieldEmail:    u.Email,
		FieldUsername: u.Username,
		FieldPassword: u.Password,
	}
}
