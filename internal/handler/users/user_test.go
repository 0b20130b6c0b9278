package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"users-api/internal/api"
	"users-api/internal/model"
	"users-api/internal/service"
	"users-api/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type failingSessions struct{ err error }

func (f failingSessions) Open(context.Context) (store.Store, func(), error) {
	return nil, nil, f.err
}

func newServer(sessions store.Sessions) *echo.Echo {
	e := echo.New()
	log := zerolog.Nop()
	e.GET("/user/:id", GetUserHandler(sessions, log))
	e.GET("/user-list", ListUsersHandler(sessions, log))
	e.POST("/user", CreateUserHandler(sessions, log))
	e.PUT("/user/:id", ReplaceUserHandler(sessions, log))
	e.PATCH("/user/:id", PatchUserHandler(sessions, log))
	e.DELETE("/user/:id", DeleteUserHandler(sessions, log))
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const aliceJSON = `{"username":"alice_01","email":"alice@example.com","password":"longenough1"}`

func TestCreateUserHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		e := newServer(store.NewMemorySessions())
		rec := do(e, http.MethodPost, "/user", aliceJSON)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"success":true,"errors":[],"id":1}`, rec.Body.String())
	})

	t.Run("validation failures answer 200", func(t *testing.T) {
		e := newServer(store.NewMemorySessions())
		cases := []struct{ body, msg string }{
			{`{"username":"ab","email":"valid@x.com","password":"longenough1"}`, api.MsgInvalidUsername},
			{`{"username":"alice_01","email":"nope","password":"longenough1"}`, api.MsgInvalidEmail},
			{`{"username":"alice_01","email":"valid@x.com","password":"short"}`, api.MsgInvalidPassword},
			{`{"username":"ab","email":"nope","password":"short"}`, api.MsgInvalidEmail},
		}
		for _, tc := range cases {
			rec := do(e, http.MethodPost, "/user", tc.body)
			require.Equal(t, http.StatusOK, rec.Code, tc.body)
			require.Equal(t, api.Response{Success: false, Errors: []string{tc.msg}}, decodeResponse(t, rec), tc.body)
		}
	})

	t.Run("already exists", func(t *testing.T) {
		e := newServer(store.NewMemorySessions())
		require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/user", aliceJSON).Code)

		rec := do(e, http.MethodPost, "/user", `{"username":"ALICE_01","email":"Alice@Example.com","password":"longenough1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{api.MsgEmailInUse, api.MsgUsernameInUse}, decodeResponse(t, rec).Errors)

		rec = do(e, http.MethodPost, "/user", `{"username":"Alice_01","email":"bob@example.com","password":"longenough1"}`)
		require.Equal(t, []string{api.MsgUsernameInUse}, decodeResponse(t, rec).Errors)
	})

	t.Run("multibyte password at max length", func(t *testing.T) {
		e := newServer(store.NewMemorySessions())
		body := `{"username":"chen_wei","email":"chen@example.com","password":"` + strings.Repeat("密", 32) + `"}`
		rec := do(e, http.MethodPost, "/user", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = do(e, http.MethodPatch, "/user/1", `{"password":"`+strings.Repeat("😀", 32)+`"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		e := newServer(store.NewMemorySessions())
		rec := do(e, http.MethodPost, "/user", `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, []string{api.MsgBadRequestBody}, decodeResponse(t, rec).Errors)
	})
}

func TestGetUserHandler(t *testing.T) {
	e := newServer(store.NewMemorySessions())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/user", aliceJSON).Code)

	rec := do(e, http.MethodGet, "/user/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.RegisteredUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.ID)
	require.Equal(t, "alice_01", got.Username)
	require.Equal(t, "alice@example.com", got.Email)
	require.False(t, got.RegisterDate.IsZero())
	require.NotContains(t, rec.Body.String(), "password")

	rec = do(e, http.MethodGet, "/user/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, []string{api.MsgInvalidUserID}, decodeResponse(t, rec).Errors)

	rec = do(e, http.MethodGet, "/user/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{api.MsgBadUserID}, decodeResponse(t, rec).Errors)
}

func TestListUsersHandler(t *testing.T) {
	e := newServer(store.NewMemorySessions())

	rec := do(e, http.MethodGet, "/user-list", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	do(e, http.MethodPost, "/user", aliceJSON)
	do(e, http.MethodPost, "/user", `{"username":"bob_bob","email":"bob@example.com","password":"longenough1"}`)

	rec = do(e, http.MethodGet, "/user-list", "")
	var got []model.RegisteredUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "alice_01", got[0].Username)
	require.Equal(t, "bob_bob", got[1].Username)
}

func TestReplaceUserHandler(t *testing.T) {
	sessions := store.NewMemorySessions()
	e := newServer(sessions)
	do(e, http.MethodPost, "/user", aliceJSON)
	do(e, http.MethodPost, "/user", `{"username":"bob_bob","email":"bob@example.com","password":"longenough1"}`)

	rec := do(e, http.MethodPut, "/user/1", `{"username":"alice_02","email":"alice@example.org","password":"brand-new-pass"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	u, err := sessions.Store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "alice_02", u.Username)
	require.Equal(t, "alice@example.org", u.Email)
	require.True(t, service.VerifyPassword("brand-new-pass", u.Password))

	rec = do(e, http.MethodPut, "/user/1", `{"username":"alice_02","email":"alice@example.org","password":"short"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{api.MsgInvalidPassword}, decodeResponse(t, rec).Errors)

	rec = do(e, http.MethodPut, "/user/1", `{"username":"BOB_BOB","email":"alice@example.org","password":"longenough1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{api.MsgUsernameInUse}, decodeResponse(t, rec).Errors)

	// existence is checked before the body is validated
	rec = do(e, http.MethodPut, "/user/9", `{"username":"ab"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, []string{api.MsgUserNotExists}, decodeResponse(t, rec).Errors)

	rec = do(e, http.MethodPut, "/user/x", aliceJSON)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchUserHandler(t *testing.T) {
	sessions := store.NewMemorySessions()
	e := newServer(sessions)
	do(e, http.MethodPost, "/user", aliceJSON)
	do(e, http.MethodPost, "/user", `{"username":"bob_bob","email":"bob@example.com","password":"longenough1"}`)
	before, _ := sessions.Store.GetByID(context.Background(), 1)

	rec := do(e, http.MethodPatch, "/user/1", `{"email":"alice@example.org"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	after, _ := sessions.Store.GetByID(context.Background(), 1)
	require.Equal(t, "alice@example.org", after.Email)
	require.Equal(t, before.Username, after.Username)
	require.Equal(t, before.Password, after.Password)

	rec = do(e, http.MethodPatch, "/user/1", `{"password":"short","username":"ab"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{api.MsgInvalidUsername}, decodeResponse(t, rec).Errors)

	rec = do(e, http.MethodPatch, "/user/1", `{"email":"BOB@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{api.MsgEmailInUse}, decodeResponse(t, rec).Errors)

	rec = do(e, http.MethodPatch, "/user/1", `{}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodPatch, "/user/3", `{"email":"x@example.com"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	e := newServer(store.NewMemorySessions())
	do(e, http.MethodPost, "/user", aliceJSON)

	rec := do(e, http.MethodDelete, "/user/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	require.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/user/1", "").Code)

	rec = do(e, http.MethodDelete, "/user/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, []string{api.MsgUserNotExists}, decodeResponse(t, rec).Errors)
}

func TestSessionFailure(t *testing.T) {
	e := newServer(failingSessions{err: errors.New("pool exhausted")})
	for _, r := range []struct{ method, path, body string }{
		{http.MethodGet, "/user/1", ""},
		{http.MethodGet, "/user-list", ""},
		{http.MethodPost, "/user", aliceJSON},
		{http.MethodPut, "/user/1", aliceJSON},
		{http.MethodPatch, "/user/1", `{}`},
		{http.MethodDelete, "/user/1", ""},
	} {
		rec := do(e, r.method, r.path, r.body)
		require.Equal(t, http.StatusInternalServerError, rec.Code, r.method+" "+r.path)
		require.Equal(t, []string{api.MsgInternalError}, decodeResponse(t, rec).Errors)
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msgs   []string
	}{
		{service.ErrInvalidEmail, http.StatusOK, []string{api.MsgInvalidEmail}},
		{service.ErrInvalidUsernameLength, http.StatusOK, []string{api.MsgInvalidUsername}},
		{service.ErrInvalidPasswordLength, http.StatusOK, []string{api.MsgInvalidPassword}},
		{&service.AlreadyExistsError{Email: true}, http.StatusOK, []string{api.MsgEmailInUse}},
		{&service.AlreadyExistsError{Username: true, Email: true}, http.StatusOK, []string{api.MsgEmailInUse, api.MsgUsernameInUse}},
		{service.ErrUserNotExists, http.StatusNotFound, []string{api.MsgUserNotExists}},
		{service.ErrUserGone, http.StatusNotFound, []string{api.MsgUserGone}},
		{errors.New("db down"), http.StatusInternalServerError, []string{api.MsgInternalError}},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, respondError(c, zerolog.Nop(), tc.err))
		require.Equal(t, tc.status, rec.Code, tc.err.Error())
		resp := decodeResponse(t, rec)
		require.False(t, resp.Success)
		require.Equal(t, tc.msgs, resp.Errors)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, respondError(c, zerolog.Nop(), nil))
	require.Zero(t, rec.Body.Len())
}

func TestWithUserServiceSeam(t *testing.T) {
	t.Cleanup(func() { withUserService = service.WithUserService })
	opened := 0
	withUserService = func(ctx context.Context, s store.Sessions, log zerolog.Logger, fn func(*service.UserService) error) error {
		opened++
		return service.WithUserService(ctx, s, log, fn)
	}
	e := newServer(store.NewMemorySessions())
	do(e, http.MethodGet, "/user-list", "")
	do(e, http.MethodGet, "/user/1", "")
	do(e, http.MethodGet, "/user/bad", "")
	require.Equal(t, 2, opened, "bad ids are rejected before a session is opened")
}
