package db

import (
	"fmt"
	"log"

	"appealapp/src/config"
	"appealapp/src/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func createEnums() {
	enums := []string{
		`DO $$ BEGIN CREATE TYPE user_role AS ENUM ('admin', 'user'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE complaint_kind AS ENUM ('individual', 'organization'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE complaint_status AS ENUM ('pending', 'processing', 'resolved', 'rejected'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}

	for _, enum := range enums {
		if err := DB.Exec(enum).Error; err != nil {
			log.Printf("Failed to create enum: %s, error: %v", enum, err)
		}
	}
}

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	createEnums()

	if err := Migrate(); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
}

// InitWithGormDB swaps in an externally managed connection (tests).
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
