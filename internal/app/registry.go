package app

import (
	"database/sql"

	"go-hrms/internal/attendance"
	"go-hrms/internal/dashboard"
	"go-hrms/internal/employee"
	"go-hrms/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, employeeRepo, outboxRepo)
	dashboardService := dashboard.NewService(employeeRepo, attendanceRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}

	return nil
}
