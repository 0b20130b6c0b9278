package service

import (
	"context"

	"users-api/internal/store"

	"github.com/rs/zerolog"
)

// WithUserService 開啟 store session 並以綁定的 service 執行 fn
// 無論正常返回、錯誤或 panic 都會釋放 session
func WithUserService(ctx context.Context, sessions store.Sessions, log zerolog.Logger, fn func(*UserService) error) error {
	s, release, err := sessions.Open(ctx)
	if err != nil {
		return err
	}
	defer release()

	return fn(NewUserService(s, log))
}
