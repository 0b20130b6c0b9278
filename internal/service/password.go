// File: internal/service/password.go
package service

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	bcryptCost                   = bcrypt.DefaultCost
)

// bcrypt 只接受 72 bytes 以內的輸入
const bcryptMaxBytes = 72

// bcryptInput 超過 72 bytes 的密碼先取 SHA-256 再 base64 (44 bytes)
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxBytes {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串 (每次呼叫使用新的 salt)
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword(bcryptInput(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// VerifyPassword 以哈希內嵌的 salt 重新計算並比對明文密碼
func VerifyPassword(password, hash string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}
