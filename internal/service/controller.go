package service

import (
	"context"
	"errors"
	"fmt"

	"users-api/internal/model"
	"users-api/internal/store"

	"github.com/rs/zerolog"
)

// UserController 將更新與刪除限定在單一使用者 id
type UserController struct {
	id    int
	store store.Store
	log   zerolog.Logger
}

func (c *UserController) ID() int {
	return c.id
}

// Update 寫入 updates 中的欄位，password 會先哈希；呼叫前須自行驗證
func (c *UserController) Update(ctx context.Context, updates model.Updates) error {
	values := make(model.Updates, len(updates))
	for k, v := range updates {
		values[k] = v
	}
	if plain, ok := values[model.FieldPassword]; ok {
		hash, err := HashPassword(plain)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		values[model.FieldPassword] = hash
	}

	if err := c.store.Update(ctx, c.id, values); err != nil {
		return goneErr(conflictErr(err))
	}

	fields := make([]string, 0, len(values))
	for _, f := range model.UpdateFields {
		if _, ok := values[f]; ok {
			fields = append(fields, f)
		}
	}
	c.log.Info().Strs("fields", fields).Msg("user updated")
	return nil
}

// Delete 永久刪除該使用者
func (c *UserController) Delete(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.id); err != nil {
		return goneErr(err)
	}
	c.log.Info().Msg("user deleted")
	return nil
}

func goneErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserGone
	}
	return err
}
