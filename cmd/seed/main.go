package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"researchops/internal/config"
	"researchops/internal/db"
	"researchops/internal/model"
	"researchops/internal/repository"
)

// SeedUser describes one account to seed.
type SeedUser struct {
	Username string
	Email    string
	Password string
}

var seedUsers = []SeedUser{
	{Username: "demo_user", Email: "demo@gmail.com", Password: "password101"},
	{Username: "test_user", Email: "test@example.com", Password: "password101"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Research{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	researchRepo := repository.NewResearchRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seedUsers {
		existing, err := userRepo.FindByIdentity(ctx, seed.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error checking user %s: %v", seed.Username, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Username:     seed.Username,
			Email:        seed.Email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Error creating user %s: %v", seed.Username, err)
		}
		created++
	}

	// Give the demo user one sample research row so listing is non-empty.
	if demo, err := userRepo.FindByIdentity(ctx, "demo_user"); err == nil {
		count, err := researchRepo.CountByUser(ctx, demo.ID)
		if err != nil {
			log.Fatalf("Error counting researches: %v", err)
		}
		if count == 0 {
			research := &model.Research{
				UserID:   demo.ID,
				Question: "Howdy",
				Answer:   "Howdy! How can I help you today",
			}
			if err := researchRepo.Create(ctx, research); err != nil {
				log.Fatalf("Error creating sample research: %v", err)
			}
			log.Println("Seeded sample research for demo_user")
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}
