package dashboard

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/summary",
			middleware.RateLimitByIP(10, 20),
			handler.Summary,
		)
	}
}
