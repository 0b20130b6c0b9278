package service

import (
	"github.com/go-playground/validator/v10"

	"users-api/internal/model"
)

var validate = validator.New()

type fieldRule struct {
	tag string
	err error
}

// 長度上下限皆包含，以 rune 計算
var fieldRules = map[string]fieldRule{
	model.FieldEmail:    {tag: "required,email", err: ErrInvalidEmail},
	model.FieldUsername: {tag: "min=6,max=32", err: ErrInvalidUsernameLength},
	model.FieldPassword: {tag: "min=8,max=32", err: ErrInvalidPasswordLength},
}

func checkField(field, value string) error {
	rule := fieldRules[field]
	if err := validate.Var(value, rule.tag); err != nil {
		return rule.err
	}
	return nil
}

// ValidateUserData 回傳第一個違反的規則：email 格式、username 長度、password 長度
func (s *UserService) ValidateUserData(user model.UnregisteredUser) error {
	if err := checkField(model.FieldEmail, user.Email); err != nil {
		return err
	}
	if err := checkField(model.FieldUsername, user.Username); err != nil {
		return err
	}
	return checkField(model.FieldPassword, user.Password)
}

// ValidateUpdateData 依 email、username、password 順序檢查有出現的欄位
func (s *UserService) ValidateUpdateData(updates model.Updates) error {
	for _, field := range model.UpdateFields {
		value, ok := updates[field]
		if !ok {
			continue
		}
		if err := checkField(field, value); err != nil {
			return err
		}
	}
	return nil
}

// PrepareUpdateData 只保留有值的可更新欄位
func (s *UserService) PrepareUpdateData(req model.UpdateUser) model.Updates {
	updates := model.Updates{}
	if req.Email != nil {
		updates[model.FieldEmail] = *req.Email
	}
	if req.Username != nil {
		updates[model.FieldUsername] = *req.Username
	}
	if req.Password != nil {
		updates[model.FieldPassword] = *req.Password
	}
	return updates
}
