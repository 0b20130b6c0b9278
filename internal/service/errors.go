package service

import (
	"errors"
	"strings"
)

var (
	ErrUserNotExists = errors.New("user not exists")
	// ErrUserGone 表示 controller 取得後該使用者已被刪除
	ErrUserGone = errors.New("user was removed")

	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidUsernameLength = errors.New("username must be from 6 to 32 characters")
	ErrInvalidPasswordLength = errors.New("password must be from 8 to 32 characters")
)

// AlreadyExistsError 標示與既有使用者衝突的唯一欄位
type AlreadyExistsError struct {
	Username bool
	Email    bool
}

func (e *AlreadyExistsError) Error() string {
	var taken []string
	if e.Username {
		taken = append(taken, "username")
	}
	if e.Email {
		taken = append(taken, "email")
	}
	return "user already exists: " + strings.Join(taken, " and ") + " in use"
}
