package repository

import (
	"context"

	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
)

type PointRepository interface {
	CreateAdjustment(ctx context.Context, a *model.PointAdjustment) error
	CreateGamePoint(ctx context.Context, gp *model.GamePoint) error
	CreateGamePointType(ctx context.Context, t *model.GamePointType) error
	// SumGamePoints totals the type values of every game point event for the user in the season.
	SumGamePoints(ctx context.Context, userID, seasonID uint64) (int64, error)
	SumAdjustments(ctx context.Context, userID, seasonID uint64) (int64, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) CreateAdjustment(ctx context.Context, a *model.PointAdjustment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *pointRepository) CreateGamePoint(ctx context.Context, gp *model.GamePoint) error {
	return r.db.WithContext(ctx).Omit("GamePointType").Create(gp).Error
}

func (r *pointRepository) CreateGamePointType(ctx context.Context, t *model.GamePointType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *pointRepository) SumGamePoints(ctx context.Context, userID, seasonID uint64) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("game_points AS gp").
		Joins("JOIN game_point_types AS t ON t.id = gp.game_point_type_id").
		Where("gp.user_id = ? AND gp.season_id = ?", userID, seasonID).
		Select("COALESCE(SUM(t.points), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *pointRepository) SumAdjustments(ctx context.Context, userID, seasonID uint64) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.PointAdjustment{}).
		Where("user_id = ? AND season_id = ?", userID, seasonID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
