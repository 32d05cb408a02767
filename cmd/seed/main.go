package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/podcast-backend/internal/config"
	"github.com/shinyyama/podcast-backend/internal/db"
	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedGamblingType struct {
	Name        string
	Description string
	Lookup      string
}

type seedGamePointType struct {
	Name   string
	Lookup string
	Points int64
}

var gamblingTypes = []seedGamblingType{
	{Name: "Default", Description: "Stake on an assignment outcome", Lookup: "default"},
	{Name: "Spin", Description: "Wheel spin wager", Lookup: "spin"},
	{Name: "Head to head", Description: "Stake against another host's pick", Lookup: "head_to_head"},
}

var gamePointTypes = []seedGamePointType{
	{Name: "Correct guess", Lookup: "correct_guess", Points: 10},
	{Name: "Attendance", Lookup: "attendance", Points: 5},
	{Name: "Trivia", Lookup: "trivia", Points: 3},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	return seed(ctx, gdb, force, strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")), time.Now().UTC())
}

// seed fills reference data. It skips when any season exists unless force is
// set; lookups make reruns idempotent.
func seed(ctx context.Context, gdb *gorm.DB, force bool, adminEmail string, now time.Time) error {
	can, err := shouldSeed(ctx, gdb, force)
	if err != nil {
		return err
	}
	if !can {
		log.Printf("seasons already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&model.Season{}).Where("end_at IS NULL").Count(&open).Error; err != nil {
			return fmt.Errorf("count open seasons: %w", err)
		}
		if open == 0 {
			if err := tx.Create(&model.Season{Name: "Season 1", StartAt: now}).Error; err != nil {
				return fmt.Errorf("insert season: %w", err)
			}
		}

		for _, gt := range gamblingTypes {
			lookup := gt.Lookup
			row := &model.GamblingType{Name: gt.Name, Description: gt.Description, Lookup: &lookup, IsActive: true}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return fmt.Errorf("insert gambling type %q: %w", gt.Lookup, err)
			}
		}
		for _, pt := range gamePointTypes {
			row := &model.GamePointType{Name: pt.Name, Lookup: pt.Lookup, Points: pt.Points}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return fmt.Errorf("insert game point type %q: %w", pt.Lookup, err)
			}
		}

		if adminEmail != "" {
			admin := &model.User{Email: adminEmail, Name: "Admin", IsAdmin: true}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"is_admin": true}),
			}).Create(admin).Error; err != nil {
				return fmt.Errorf("upsert admin %q: %w", adminEmail, err)
			}
		}

		log.Printf("seeded %d gambling types, %d game point types", len(gamblingTypes), len(gamePointTypes))
		return nil
	})
}

func shouldSeed(ctx context.Context, gdb *gorm.DB, force bool) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Season{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count seasons: %w", err)
	}
	return cnt == 0 || force, nil
}
