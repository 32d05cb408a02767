package repository

import (
	"context"

	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
)

type EpisodeRepository interface {
	Create(ctx context.Context, e *model.Episode) error
	CreateMovie(ctx context.Context, m *model.Movie) error
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	// FindByID loads the episode with its assignments and their movies.
	FindByID(ctx context.Context, id uint64) (*model.Episode, error)
	FindStatus(ctx context.Context, id uint64) (model.EpisodeStatus, error)
	UpdateStatus(ctx context.Context, id uint64, status model.EpisodeStatus) error
}

type episodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) EpisodeRepository {
	return &episodeRepository{db: db}
}

func (r *episodeRepository) Create(ctx context.Context, e *model.Episode) error {
	return r.db.WithContext(ctx).Omit("Assignments").Create(e).Error
}

func (r *episodeRepository) CreateMovie(ctx context.Context, m *model.Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *episodeRepository) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Omit("Movie").Create(a).Error
}

func (r *episodeRepository) FindByID(ctx context.Context, id uint64) (*model.Episode, error) {
	var e model.Episode
	if err := r.db.WithContext(ctx).
		Preload("Assignments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Assignments.Movie").
		First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *episodeRepository) FindStatus(ctx context.Context, id uint64) (model.EpisodeStatus, error) {
	var e model.Episode
	if err := r.db.WithContext(ctx).
		Select("id", "status").
		First(&e, id).Error; err != nil {
		return "", err
	}
	return e.Status, nil
}

func (r *episodeRepository) UpdateStatus(ctx context.Context, id uint64, status model.EpisodeStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Episode{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
