package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"autoshop/api/internal/config"
	"autoshop/api/internal/mail"
	"autoshop/api/internal/middleware"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/service"
	"autoshop/api/internal/storage"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	authService    *service.AuthService
	resetService   *service.ResetService
	accountService *service.AccountService
	db             *pgxpool.Pool
	cache          *redis.Client
	store          *storage.ObjectStore
	users          *repository.UserRepository
	sessions       *repository.SessionRepository
	customers      *repository.CustomerRepository
	vehicles       *repository.VehicleRepository
	orders         *repository.ServiceOrderRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, mailer mail.Mailer, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	auth := service.NewAuthService(userRepo, sessionRepo, cfg, log)
	reset := service.NewResetService(userRepo, resetRepo, mailer, cfg, log)
	account := service.NewAccountService(userRepo, sessionRepo, log)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    auth,
		resetService:   reset,
		accountService: account,
		db:             db,
		cache:          cache,
		store:          store,
		users:          userRepo,
		sessions:       sessionRepo,
		customers:      repository.NewCustomerRepository(db),
		vehicles:       repository.NewVehicleRepository(db),
		orders:         repository.NewServiceOrderRepository(db),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	requireAuth := middleware.Auth(h.cfg.Security.JWTSecret, h.users, h.sessions)
	rl := h.cfg.RateLimit

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login",
			middleware.RateLimit(h.cache, h.log, "login", rl.LoginLimit, rl.Window), h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/register", h.RegisterUser)
		auth.POST("/forgot-password",
			middleware.RateLimit(h.cache, h.log, "forgot", rl.ForgotLimit, rl.Window), h.ForgotPassword)
		auth.GET("/verify-reset-token", h.VerifyResetToken)
		auth.POST("/reset-password", h.ResetPassword)

		user := v1.Group("/user")
		user.Use(requireAuth)
		user.GET("/profile", h.GetProfile)
		user.PATCH("/profile", h.UpdateProfile)
		user.GET("/export", h.ExportData)
		user.DELETE("/account", h.DeleteAccount)
		user.POST("/avatar", h.UploadAvatar)
		user.GET("/sessions", h.ListSessions)
		user.DELETE("/sessions/:id", h.TerminateSession)

		staff := middleware.RequireRoles(models.UserRoleStaff, models.UserRoleAdmin)

		customers := v1.Group("/customers")
		customers.Use(requireAuth, staff)
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/:id/service-orders", h.ListCustomerOrders)
		customers.GET("/:id/vehicles", h.ListCustomerVehicles)

		vehicles := v1.Group("/vehicles")
		vehicles.Use(requireAuth, staff)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		vehicles.GET("/customer/:customerId", h.ListVehiclesByCustomer)
		vehicles.POST("/customer/:customerId", h.CreateVehicle)

		orders := v1.Group("/service-orders")
		orders.Use(requireAuth, staff)
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)

		admin := v1.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRoles(models.UserRoleAdmin))
		admin.GET("/users", h.ListUsers)

		dashboard := v1.Group("/dashboard")
		dashboard.Use(requireAuth, staff)
		dashboard.GET("/stats", h.DashboardStats)
	}
}
