package database

import (
	"fmt"
	"log"

	"github.com/dentwise/dentwise-api/internal/config"
	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Doctor{},
		&entity.Appointment{},
		&entity.Video{},
		&entity.VideoWatch{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the doctor roster when the table is empty
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Doctor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check doctor roster: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default doctor roster...")

	doctors := []entity.Doctor{
		{
			Name:       "Sarah Mitchell",
			Email:      "sarah.mitchell@dentwise.example.com",
			Phone:      "+1-555-0101",
			Speciality: "General Dentistry",
			Gender:     enum.GenderFemale,
			IsActive:   true,
		},
		{
			Name:       "James Carter",
			Email:      "james.carter@dentwise.example.com",
			Phone:      "+1-555-0102",
			Speciality: "Orthodontics",
			Gender:     enum.GenderMale,
			IsActive:   true,
		},
		{
			Name:       "Emily Chen",
			Email:      "emily.chen@dentwise.example.com",
			Phone:      "+1-555-0103",
			Speciality: "Pediatric Dentistry",
			Gender:     enum.GenderFemale,
			IsActive:   true,
		},
	}

	for i := range doctors {
		if err := db.Create(&doctors[i]).Error; err != nil {
			log.Printf("Warning: failed to seed doctor %s: %v", doctors[i].Name, err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
