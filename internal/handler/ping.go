// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"users-api/internal/api"
	"users-api/internal/cache"
	"users-api/internal/database"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong；有設定時一併檢查 PostgreSQL 與 Redis 連線
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.Response
// @Router      /ping [get]
func PingHandler(db database.Pool, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		// db 為 nil 代表使用記憶體 store
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				return c.JSON(http.StatusInternalServerError, api.Fail(api.MsgDatabaseUnhealthy))
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return c.JSON(http.StatusInternalServerError, api.Fail(api.MsgCacheUnhealthy))
			}
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
