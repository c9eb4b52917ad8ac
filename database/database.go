package database

import (
	"fmt"
	"log"

	config "github.com/devgupta2601/tuition_hub/configs"
	"github.com/devgupta2601/tuition_hub/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Student{},
		&models.Tutor{},
		&models.Admin{},
		&models.PaymentRequest{},
		&models.ShiftRequest{},
		&models.TutorChangeRequest{},
		&models.WithdrawalRequest{},
		&models.WalletTransaction{},
		&models.PasswordResetRequest{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.Admin{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.Admin{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

func SeedSettings() {
	var count int64
	if err := DB.Model(&models.Setting{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for settings row: %v", err)
		return
	}
	if count > 0 {
		return
	}

	settings := models.Setting{
		ID:           1,
		StudentPrice: 999,
		TutorPayout:  800,
	}
	if err := DB.Create(&settings).Error; err != nil {
		log.Fatalf("🔥 Failed to seed settings: %v", err)
		return
	}
	log.Println("✅ Default settings seeded")
}
