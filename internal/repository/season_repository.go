package repository

import (
	"context"
	"time"

	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
)

type SeasonRepository interface {
	Create(ctx context.Context, s *model.Season) error
	FindCurrent(ctx context.Context) (*model.Season, error)
	FindByID(ctx context.Context, id uint64) (*model.Season, error)
	// StartNew closes every open season at now and opens a new one.
	StartNew(ctx context.Context, name string, now time.Time) (*model.Season, error)
}

type seasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) Create(ctx context.Context, s *model.Season) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *seasonRepository) FindCurrent(ctx context.Context) (*model.Season, error) {
	var s model.Season
	if err := r.db.WithContext(ctx).
		Where("end_at IS NULL").
		Order("start_at DESC").
		Order("id DESC").
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *seasonRepository) FindByID(ctx context.Context, id uint64) (*model.Season, error) {
	var s model.Season
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *seasonRepository) StartNew(ctx context.Context, name string, now time.Time) (*model.Season, error) {
	s := &model.Season{Name: name, StartAt: now}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Season{}).
			Where("end_at IS NULL").
			Update("end_at", now).Error; err != nil {
			return err
		}
		return tx.Create(s).Error
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
