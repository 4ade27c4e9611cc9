package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fitbook/internal/config"
	"fitbook/internal/database"
	"fitbook/internal/middleware"
	"fitbook/internal/modules/auth"
	"fitbook/internal/modules/booking"
	"fitbook/internal/modules/schedule"
	jwtsvc "fitbook/internal/pkg/jwt"
	"fitbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	scheduleService := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	bookingService := booking.NewService(bookingRepo, scheduleRepo)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// any authenticated role
		authed := v1.Group("/")
		authed.Use(middleware.Auth(j))

		admin := authed.Group("/")
		admin.Use(middleware.AdminOnly())

		trainee := authed.Group("/")
		trainee.Use(middleware.TraineeOnly())

		scheduleHandler.RegisterRoutes(authed, admin)
		bookingHandler.RegisterRoutes(authed, trainee, admin)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
