package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"fitbook/internal/database"
	"fitbook/internal/domain"
	"fitbook/internal/modules/schedule"
	"fitbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fitbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM schedule_trainees")
	db.Exec("DELETE FROM schedules")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	schedules := repository.NewScheduleRepository(db)

	log.Println("Creating users...")

	admin := createUser(ctx, users, "Admin", "admin@fitbook.io", "admin123", domain.RoleAdmin)
	log.Println("Admin created: admin@fitbook.io / admin123")

	trainers := []*domain.User{}
	for i, name := range []string{"Aliya Trainer", "Marat Trainer"} {
		email := fmt.Sprintf("trainer%d@fitbook.io", i+1)
		trainers = append(trainers, createUser(ctx, users, name, email, "trainer123", domain.RoleTrainer))
		log.Printf("Trainer created: %s / trainer123", email)
	}

	for i := 1; i <= 4; i++ {
		email := fmt.Sprintf("trainee%d@fitbook.io", i)
		createUser(ctx, users, fmt.Sprintf("Trainee %d", i), email, "trainee123", domain.RoleTrainee)
		log.Printf("Trainee created: %s / trainee123", email)
	}

	log.Println("Creating schedules...")

	svc := schedule.NewService(schedules)
	classDate := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	seedClasses := []struct {
		title string
		start string
	}{
		{"Morning Yoga", "07:00"},
		{"HIIT Circuit", "10:00"},
		{"Evening Pilates", "18:30"},
	}

	for i, c := range seedClasses {
		trainer := trainers[i%len(trainers)]
		sched, err := svc.Create(ctx, schedule.CreateScheduleRequest{
			Title:     c.title,
			ClassDate: classDate,
			StartTime: c.start,
			Trainer:   &trainer.ID,
			CreatedBy: admin.ID,
		})
		if err != nil {
			log.Fatal("seed schedule failed:", err)
		}
		log.Printf("Schedule created: %s (%s-%s) slug=%s", sched.Title, sched.StartTime, sched.EndTime, sched.Slug)
	}

	log.Println("Seed complete.")
}

func createUser(ctx context.Context, users *repository.UserRepository, name, email, password string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     domain.StatusActive,
		Bookings:     []int64{},
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("seed user failed:", err)
	}
	return u
}
