package users

import (
	"errors"
	"net/http"
	"strconv"

	"users-api/internal/api"
	"users-api/internal/model"
	"users-api/internal/service"
	"users-api/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var withUserService = service.WithUserService

// GetUserHandler 透過 ID 查詢使用者
// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者資料 (不含密碼)
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  model.RegisteredUser
// @Failure     400  {object}  api.Response  "參數錯誤"
// @Failure     404  {object}  api.Response  "使用者不存在"
// @Failure     500  {object}  api.Response  "伺服器錯誤"
// @Router      /user/{id} [get]
func GetUserHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadUserID))
		}
		ctx := c.Request().Context()
		err = withUserService(ctx, sessions, log, func(s *service.UserService) error {
			user, err := s.Get(ctx, id)
			if err != nil {
				return err
			}
			if user == nil {
				return c.JSON(http.StatusNotFound, api.Fail(api.MsgInvalidUserID))
			}
			return c.JSON(http.StatusOK, user)
		})
		return respondError(c, log, err)
	}
}

// ListUsersHandler 列出所有使用者
// @Summary     List users
// @Description 依建立順序回傳所有使用者
// @Tags        users
// @Produce     json
// @Success     200  {array}   model.RegisteredUser
// @Failure     500  {object}  api.Response
// @Router      /user-list [get]
func ListUsersHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		err := withUserService(ctx, sessions, log, func(s *service.UserService) error {
			users, err := s.GetAll(ctx)
			if err != nil {
				return err
			}
			return c.JSON(http.StatusOK, users)
		})
		return respondError(c, log, err)
	}
}

// CreateUserHandler 建立新使用者
// @Summary     Create a new user
// @Description 驗證資料並建立新帳號；驗證失敗與重複帳號以 200 回傳錯誤內容
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user  body      model.UnregisteredUser  true  "使用者資料"
// @Success     201   {object}  api.CreatedResponse
// @Success     200   {object}  api.Response  "驗證失敗或 username/email 已使用"
// @Failure     400   {object}  api.Response
// @Failure     500   {object}  api.Response
// @Router      /user [post]
func CreateUserHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.UnregisteredUser
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadRequestBody))
		}
		ctx := c.Request().Context()
		err := withUserService(ctx, sessions, log, func(s *service.UserService) error {
			if err := s.ValidateUserData(req); err != nil {
				return err
			}
			id, err := s.Create(ctx, req)
			if err != nil {
				return err
			}
			return c.JSON(http.StatusCreated, api.Created(id))
		})
		return respondError(c, log, err)
	}
}

// ReplaceUserHandler 完整更新使用者
// @Summary     Replace a user
// @Description 以完整的使用者資料覆寫 username、email 與 password
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id    path      int                     true  "使用者 ID"
// @Param       user  body      model.UnregisteredUser  true  "使用者資料"
// @Success     204   "No Content"
// @Success     200   {object}  api.Response  "驗證失敗或 username/email 已使用"
// @Failure     400   {object}  api.Response
// @Failure     404   {object}  api.Response
// @Failure     500   {object}  api.Response
// @Router      /user/{id} [put]
func ReplaceUserHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadUserID))
		}
		var req model.UnregisteredUser
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadRequestBody))
		}
		ctx := c.Request().Context()
		err = withUserService(ctx, sessions, log, func(s *service.UserService) error {
			ctrl, err := s.GetController(ctx, id)
			if err != nil {
				return err
			}
			if err := s.ValidateUserData(req); err != nil {
				return err
			}
			if err := ctrl.Update(ctx, req.Updates()); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		})
		return respondError(c, log, err)
	}
}

// PatchUserHandler 部分更新使用者
// @Summary     Update a user
// @Description 只更新有提供的欄位
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id    path      int               true  "使用者 ID"
// @Param       user  body      model.UpdateUser  true  "要更新的欄位"
// @Success     204   "No Content"
// @Success     200   {object}  api.Response  "驗證失敗或 username/email 已使用"
// @Failure     400   {object}  api.Response
// @Failure     404   {object}  api.Response
// @Failure     500   {object}  api.Response
// @Router      /user/{id} [patch]
func PatchUserHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadUserID))
		}
		var req model.UpdateUser
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadRequestBody))
		}
		ctx := c.Request().Context()
		err = withUserService(ctx, sessions, log, func(s *service.UserService) error {
			ctrl, err := s.GetController(ctx, id)
			if err != nil {
				return err
			}
			updates := s.PrepareUpdateData(req)
			if err := s.ValidateUpdateData(updates); err != nil {
				return err
			}
			if err := ctrl.Update(ctx, updates); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		})
		return respondError(c, log, err)
	}
}

// DeleteUserHandler 刪除使用者
// @Summary     Delete a user by ID
// @Description 根據使用者 ID 永久刪除使用者
// @Tags        users
// @Param       id   path      int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object}  api.Response  "參數錯誤"
// @Failure     404  {object}  api.Response  "使用者不存在"
// @Failure     500  {object}  api.Response  "伺服器錯誤"
// @Router      /user/{id} [delete]
func DeleteUserHandler(sessions store.Sessions, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Fail(api.MsgBadUserID))
		}
		ctx := c.Request().Context()
		err = withUserService(ctx, sessions, log, func(s *service.UserService) error {
			ctrl, err := s.GetController(ctx, id)
			if err != nil {
				return err
			}
			if err := ctrl.Delete(ctx); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		})
		return respondError(c, log, err)
	}
}

// respondError 將 service 錯誤轉成回應；err 為 nil 時代表回應已寫出
func respondError(c echo.Context, log zerolog.Logger, err error) error {
	if err == nil {
		return nil
	}
	if c.Response().Committed {
		return err
	}

	var exists *service.AlreadyExistsError
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return c.JSON(http.StatusOK, api.Fail(api.MsgInvalidEmail))
	case errors.Is(err, service.ErrInvalidUsernameLength):
		return c.JSON(http.StatusOK, api.Fail(api.MsgInvalidUsername))
	case errors.Is(err, service.ErrInvalidPasswordLength):
		return c.JSON(http.StatusOK, api.Fail(api.MsgInvalidPassword))
	case errors.As(err, &exists):
		return c.JSON(http.StatusOK, alreadyExists(exists))
	case errors.Is(err, service.ErrUserNotExists):
		return c.JSON(http.StatusNotFound, api.Fail(api.MsgUserNotExists))
	case errors.Is(err, service.ErrUserGone):
		return c.JSON(http.StatusNotFound, api.Fail(api.MsgUserGone))
	default:
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		return c.JSON(http.StatusInternalServerError, api.Fail(api.MsgInternalError))
	}
}

// email 的訊息排在 username 之前
func alreadyExists(e *service.AlreadyExistsError) api.Response {
	resp := api.Fail()
	if e.Email {
		resp = api.MergeErrors(resp, api.Fail(api.MsgEmailInUse))
	}
	if e.Username {
		resp = api.MergeErrors(resp, api.Fail(api.MsgUsernameInUse))
	}
	return resp
}
