package app

import (
	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/leaverequest"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.Token)
	userService := user.NewService(userRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveRequestService := leaverequest.NewService(gormDB, leaveRequestRepo, userRepo, outboxRepo, rdb)

	// --- Handlers ---
	userHandler := user.NewHandler(userService, authService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		user.RegisterRoutes(api, userHandler, rbacService, cfg.Token)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService, cfg.Token)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, cfg.Token, rdb)
	}

	return nil
}
