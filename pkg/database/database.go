package database

import (
	"fmt"
	"log"
	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs AutoMigrate and seeds reference data. Shared by the app
// startup path and the test harness.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Content{},
		&model.Activity{},
		&model.ActivityQuestion{},
		&model.ActivityAttempt{},
		&model.CompletionRecord{},
		&model.SpecialtyRequirement{},
		&model.RequirementCategory{},
		&model.SubscriptionPlan{},
		&model.Subscription{},
		&model.Post{},
		&model.Comment{},
		&model.TrackingEvent{},
	)
	if err != nil {
		return err
	}

	seedRequirements(db)
	seedPlans(db)
	return nil
}

// Per-renewal-cycle CME minimums. State boards differ; these are the
// defaults shipped with the platform, editable by admins afterwards.
func seedRequirements(db *gorm.DB) {
	var count int64
	db.Model(&model.SpecialtyRequirement{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.SpecialtyRequirement{
		{Specialty: "Family Medicine", RequiredHours: 50, CycleYears: 1},
		{Specialty: "Internal Medicine", RequiredHours: 50, CycleYears: 2},
		{Specialty: "Emergency Medicine", RequiredHours: 50, CycleYears: 2},
		{Specialty: "Pediatrics", RequiredHours: 40, CycleYears: 2},
		{Specialty: "Psychiatry", RequiredHours: 40, CycleYears: 2},
	}
	for i := range defaults {
		db.Create(&defaults[i])
	}

	// Ethics sub-minimum applies to the two-year internal medicine cycle.
	var im model.SpecialtyRequirement
	if err := db.Where("specialty = ?", "Internal Medicine").First(&im).Error; err == nil {
		db.Create(&model.RequirementCategory{
			RequirementID: im.ID,
			CreditType:    model.CreditEthics,
			MinimumHours:  2,
		})
	}
}

func seedPlans(db *gorm.DB) {
	var count int64
	db.Model(&model.SubscriptionPlan{}).Count(&count)
	if count > 0 {
		return
	}

	plans := []model.SubscriptionPlan{
		{Code: "premium", Name: "Premium", PriceMonthly: 2900},
		{Code: "cme_unlimited", Name: "CME Unlimited", PriceMonthly: 4900},
	}
	for i := range plans {
		db.Create(&plans[i])
	}
}
