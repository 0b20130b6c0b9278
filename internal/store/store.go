// Package store 提供使用者資料的持久化實作 (PostgreSQL 與記憶體)
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"users-api/internal/model"
)

// ErrNotFound 表示指定 id 的使用者不存在
var ErrNotFound = errors.New("user not found")

// ConflictError 表示 username 或 email 觸發唯一性限制
type ConflictError struct {
	Username bool
	Email    bool
}

func (e *ConflictError) Error() string {
	var cols []string
	if e.Username {
		cols = append(cols, "username")
	}
	if e.Email {
		cols = append(cols, "email")
	}
	return fmt.Sprintf("unique constraint violated on %s", strings.Join(cols, ", "))
}

// Store is the persistence contract the user service depends on.
// Username and email lookups compare case-insensitively.
type Store interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int, updates model.Updates) error
	Delete(ctx context.Context, id int) error
}

// Sessions hands out a Store scoped to one request; release must be
// called exactly once when the request is done with it.
type Sessions interface {
	Open(ctx context.Context) (s Store, release func(), err error)
}

func checkUpdateFields(updates model.Updates) error {
	for field := range updates {
		if !model.Allowed(field) {
			return fmt.Errorf("field %q is not updatable", field)
		}
	}
	return nil
}
