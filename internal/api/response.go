// Package api 定義 HTTP 回應模型與固定的錯誤訊息
package api

// 對外固定的錯誤訊息
const (
	MsgInvalidEmail      = "Invalid email address"
	MsgInvalidUsername   = "Username must be from 6 to 32 characters"
	MsgInvalidPassword   = "Password must be from 8 to 32 characters"
	MsgEmailInUse        = "Email already in use"
	MsgUsernameInUse     = "Username already in use"
	MsgInvalidUserID     = "Invalid user id"
	MsgUserNotExists     = "User not exists"
	MsgUserGone          = "User was removed"
	MsgBadUserID         = "invalid user ID"
	MsgBadRequestBody    = "invalid request body"
	MsgInternalError     = "internal server error"
	MsgDatabaseUnhealthy = "database unhealthy"
	MsgCacheUnhealthy    = "cache unhealthy"
)

// Response 所有失敗回應共用的結構
// swagger:model api.Response
type Response struct {
	Success bool     `json:"success" example:"false"`
	Errors  []string `json:"errors"`
}

// CreatedResponse 建立使用者成功時的回應
// swagger:model api.CreatedResponse
type CreatedResponse struct {
	Response
	ID int `json:"id" example:"1"`
}

// Fail 回傳帶有錯誤訊息的失敗回應
func Fail(msgs ...string) Response {
	errs := make([]string, 0, len(msgs))
	errs = append(errs, msgs...)
	return Response{Success: false, Errors: errs}
}

// Created 回傳新使用者 id
func Created(id int) CreatedResponse {
	return CreatedResponse{Response: Response{Success: true, Errors: []string{}}, ID: id}
}

// MergeErrors returns a new response carrying a's errors followed by b's.
// The result succeeds only when both inputs do; neither input is modified.
func MergeErrors(a, b Response) Response {
	errs := make([]string, 0, len(a.Errors)+len(b.Errors))
	errs = append(errs, a.Errors...)
	errs = append(errs, b.Errors...)
	return Response{Success: a.Success && b.Success, Errors: errs}
}
