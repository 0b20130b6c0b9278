// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"users-api/internal/cache"
	"users-api/internal/database"
	"users-api/internal/handler"
	"users-api/internal/handler/users"
	"users-api/internal/store"
)

// BasePath 所有 API 路由的前綴
const BasePath = "/api/v1"

// Setup 註冊所有路由；db 與 rdb 可為 nil
func Setup(e *echo.Echo, sessions store.Sessions, db database.Pool, rdb cache.Cache, log zerolog.Logger) {
	api := e.Group(BasePath)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// Users CRUD
	api.GET("/user/:id", users.GetUserHandler(sessions, log))
	api.GET("/user-list", users.ListUsersHandler(sessions, log))
	api.POST("/user", users.CreateUserHandler(sessions, log))
	api.PUT("/user/:id", users.ReplaceUserHandler(sessions, log))
	api.PATCH("/user/:id", users.PatchUserHandler(sessions, log))
	api.DELETE("/user/:id", users.DeleteUserHandler(sessions, log))
}
