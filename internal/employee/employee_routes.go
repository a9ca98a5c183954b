package employee

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByIP(20, 40),
			handler.GetAll,
		)

		employees.POST("",
			middleware.RateLimitByIP(5, 10),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByIP(2, 5),
			handler.Delete,
		)
	}
}
