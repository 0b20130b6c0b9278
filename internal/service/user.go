// File: internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"users-api/internal/model"
	"users-api/internal/store"

	"github.com/rs/zerolog"
)

// UserService 綁定單一請求的 store session，提供驗證、唯一性檢查與 CRUD
type UserService struct {
	store store.Store
	log   zerolog.Logger
}

func NewUserService(s store.Store, log zerolog.Logger) *UserService {
	return &UserService{store: s, log: log}
}

// IsExists 分別回報 username 與 email 是否已被使用 (不分大小寫)
// 僅為預先檢查，唯一性仍以 store 的唯一索引為準
func (s *UserService) IsExists(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error) {
	usernameTaken, err = s.store.UsernameExists(ctx, username)
	if err != nil {
		return false, false, err
	}
	emailTaken, err = s.store.EmailExists(ctx, email)
	if err != nil {
		return false, false, err
	}
	return usernameTaken, emailTaken, nil
}

// Create 新增使用者並回傳新 id
func (s *UserService) Create(ctx context.Context, user model.UnregisteredUser) (int, error) {
	usernameTaken, emailTaken, err := s.IsExists(ctx, user.Username, user.Email)
	if err != nil {
		return 0, err
	}
	if usernameTaken || emailTaken {
		return 0, &AlreadyExistsError{Username: usernameTaken, Email: emailTaken}
	}

	hash, err := HashPassword(user.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username: user.Username,
		Email:    user.Email,
		Password: hash,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return 0, conflictErr(err)
	}

	s.log.Info().Int("user_id", u.ID).Str("username", u.Username).Msg("user created")
	return u.ID, nil
}

// Get 回傳使用者投影；id 不存在時回傳 nil, nil
func (s *UserService) Get(ctx context.Context, id int) (*model.RegisteredUser, error) {
	u, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := u.Projection()
	return &p, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]model.RegisteredUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.RegisteredUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Projection())
	}
	return out, nil
}

// GetController 確認使用者存在後回傳綁定該 id 的 controller
func (s *UserService) GetController(ctx context.Context, id int) (*UserController, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotExists
	}
	return &UserController{
		id:    id,
		store: s.store,
		log:   s.log.With().Int("user_id", id).Logger(),
	}, nil
}

func conflictErr(err error) error {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		return &AlreadyExistsError{Username: conflict.Username, Email: conflict.Email}
	}
	return err
}
