package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/config"
	"hospital-appointment-api/internal/database"
	"hospital-appointment-api/internal/handler"
	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/notify"
	"hospital-appointment-api/internal/repository"
	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	blockedSlotRepo := repository.NewBlockedSlotRepo(db)
	managementRepo := repository.NewManagementRepo(db)

	// 5. Initialize the SMS collaborator (disabled without an API key)
	smsClient := notify.NewSMSClient(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.SenderID)
	if cfg.SMS.APIKey == "" {
		log.Println("ARKESEL_API_KEY not set, SMS notifications disabled")
	}

	// 6. Initialize services
	authService := service.NewAuthService(userRepo, hospitalRepo)
	hospitalService := service.NewHospitalService(hospitalRepo, serviceRepo, managementRepo)
	doctorService := service.NewDoctorService(doctorRepo, hospitalRepo, managementRepo)
	scheduleService := service.NewScheduleService(blockedSlotRepo, doctorRepo, appointmentRepo)
	appointmentService := service.NewAppointmentService(
		appointmentRepo, hospitalRepo, doctorRepo, serviceRepo,
		blockedSlotRepo, bookingRepo, smsClient,
	)
	userService := service.NewUserService(userRepo, bookingRepo)
	dashboardService := service.NewDashboardService(
		hospitalRepo, doctorRepo, appointmentRepo, bookingRepo, managementRepo,
	)

	// 7. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(hospitalService, doctorService, scheduleService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, userService)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-appointment-api",
		})
	})

	// Auth routes (register is optionally authenticated so an admin
	// can create staff accounts)
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.OptionalAuth(), authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Public catalog and booking routes
	api := r.Group("/api")
	{
		api.GET("/hospitals", catalogHandler.Hospitals)
		api.GET("/hospitals/:id", catalogHandler.HospitalDetail)
		api.GET("/doctors", catalogHandler.Doctors)
		api.GET("/services", catalogHandler.Services)
		api.GET("/availability", catalogHandler.Availability)
		api.POST("/appointments", middleware.OptionalAuth(), appointmentHandler.Create)
	}

	// Dashboard routes (authenticated)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/summary", dashboardHandler.Summary)
		dashboard.GET("/bookings", dashboardHandler.MyBookings)
		dashboard.GET("/users", dashboardHandler.ListUsers)

		staffRoles := middleware.RequireRoles(authz.RoleAdmin, authz.RoleHospitalAdmin, authz.RoleStaff)

		dashboard.GET("/hospitals", hospitalHandler.List)
		dashboard.POST("/hospitals", middleware.RequireRoles(authz.RoleAdmin), hospitalHandler.Create)
		dashboard.PUT("/hospitals/:id", middleware.RequireRoles(authz.RoleAdmin), hospitalHandler.Update)
		dashboard.DELETE("/hospitals/:id", middleware.RequireRoles(authz.RoleAdmin), hospitalHandler.Delete)

		dashboard.GET("/doctors", staffRoles, doctorHandler.List)
		dashboard.POST("/doctors", staffRoles, doctorHandler.Create)
		dashboard.PUT("/doctors/:id", staffRoles, doctorHandler.Update)
		dashboard.POST("/doctors/:id/deactivate", staffRoles, doctorHandler.Deactivate)
		dashboard.DELETE("/doctors/:id", staffRoles, doctorHandler.Delete)

		dashboard.GET("/services", staffRoles, hospitalHandler.ListServices)
		dashboard.POST("/services", staffRoles, hospitalHandler.CreateService)
		dashboard.PUT("/services/:id", staffRoles, hospitalHandler.UpdateService)
		dashboard.DELETE("/services/:id", staffRoles, hospitalHandler.DeleteService)

		dashboard.GET("/appointments", staffRoles, appointmentHandler.List)
		dashboard.GET("/appointments/:id", staffRoles, appointmentHandler.Get)
		dashboard.PATCH("/appointments/:id/status", staffRoles, appointmentHandler.UpdateStatus)

		dashboard.GET("/blocked-slots", staffRoles, scheduleHandler.ListBlocks)
		dashboard.POST("/blocked-slots", staffRoles, scheduleHandler.CreateBlock)
		dashboard.DELETE("/blocked-slots/:id", staffRoles, scheduleHandler.DeleteBlock)
	}

	// 10. Start server with graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
