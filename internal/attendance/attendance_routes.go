package attendance

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	{
		attendance.POST("",
			middleware.RateLimitByIP(5, 10),
			middleware.Idempotency(rdb),
			handler.Mark,
		)

		attendance.GET("/list",
			middleware.RateLimitByIP(20, 40),
			handler.List,
		)

		attendance.GET("/summary",
			middleware.RateLimitByIP(10, 20),
			handler.Summary,
		)

		attendance.GET("/export",
			middleware.RateLimitByIP(2, 5),
			handler.Export,
		)
	}
}
