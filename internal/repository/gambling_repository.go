package repository

import (
	"context"

	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BetKey is the uniqueness tuple of a wager. Zero means "not set".
type BetKey struct {
	UserID         uint64
	GamblingTypeID uint64
	AssignmentID   uint64
	TargetUserID   uint64
}

type GamblingRepository interface {
	CreateType(ctx context.Context, t *model.GamblingType) error
	FindTypeByID(ctx context.Context, id uint64) (*model.GamblingType, error)
	FindTypeByLookup(ctx context.Context, lookup string) (*model.GamblingType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]model.GamblingType, error)

	FindByID(ctx context.Context, id uint64) (*model.GamblingPoints, error)
	FindByKey(ctx context.Context, key BetKey) (*model.GamblingPoints, error)
	// UpsertPending inserts a pending bet for key or overwrites the stake of the
	// existing one. It returns gorm.ErrRecordNotFound when the existing bet is
	// no longer pending.
	UpsertPending(ctx context.Context, key BetKey, seasonID uint64, points int64) (*model.GamblingPoints, error)
	// Resolve moves a pending bet to status. It returns gorm.ErrRecordNotFound
	// when no pending bet with that id exists.
	Resolve(ctx context.Context, id uint64, status model.GamblingStatus, successful bool) error

	ListByAssignment(ctx context.Context, userID, assignmentID uint64) ([]model.GamblingPoints, error)
	ListByAssignments(ctx context.Context, userID uint64, assignmentIDs []uint64) ([]model.GamblingPoints, error)
	ListByType(ctx context.Context, userID, gamblingTypeID uint64) ([]model.GamblingPoints, error)
	ListForActiveTypes(ctx context.Context, userID uint64) ([]model.GamblingPoints, error)
}

type gamblingRepository struct {
	db *gorm.DB
}

func NewGamblingRepository(db *gorm.DB) GamblingRepository {
	return &gamblingRepository{db: db}
}

func (r *gamblingRepository) CreateType(ctx context.Context, t *model.GamblingType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *gamblingRepository) FindTypeByID(ctx context.Context, id uint64) (*model.GamblingType, error) {
	var t model.GamblingType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gamblingRepository) FindTypeByLookup(ctx context.Context, lookup string) (*model.GamblingType, error) {
	var t model.GamblingType
	if err := r.db.WithContext(ctx).
		Where("lookup = ?", lookup).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gamblingRepository) ListTypes(ctx context.Context, activeOnly bool) ([]model.GamblingType, error) {
	var list []model.GamblingType
	q := r.db.WithContext(ctx).Model(&model.GamblingType{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gamblingRepository) FindByID(ctx context.Context, id uint64) (*model.GamblingPoints, error) {
	var g model.GamblingPoints
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gamblingRepository) FindByKey(ctx context.Context, key BetKey) (*model.GamblingPoints, error) {
	return findByKey(r.db.WithContext(ctx), key)
}

func findByKey(tx *gorm.DB, key BetKey) (*model.GamblingPoints, error) {
	var g model.GamblingPoints
	if err := tx.
		Where("user_id = ? AND gambling_type_id = ? AND assignment_id = ? AND target_user_id = ?",
			key.UserID, key.GamblingTypeID, key.AssignmentID, key.TargetUserID).
		First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gamblingRepository) UpsertPending(ctx context.Context, key BetKey, seasonID uint64, points int64) (*model.GamblingPoints, error) {
	var out *model.GamblingPoints
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &model.GamblingPoints{
			UserID:         key.UserID,
			GamblingTypeID: key.GamblingTypeID,
			AssignmentID:   key.AssignmentID,
			TargetUserID:   key.TargetUserID,
			SeasonID:       seasonID,
			Points:         points,
			Status:         model.GamblingStatusPending,
		}
		// The unique tuple index makes the insert a no-op when the bet exists.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
		res := tx.Model(&model.GamblingPoints{}).
			Where("user_id = ? AND gambling_type_id = ? AND assignment_id = ? AND target_user_id = ? AND status = ?",
				key.UserID, key.GamblingTypeID, key.AssignmentID, key.TargetUserID, model.GamblingStatusPending).
			Update("points", points)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		g, err := findByKey(tx, key)
		if err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gamblingRepository) Resolve(ctx context.Context, id uint64, status model.GamblingStatus, successful bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.GamblingPoints{}).
		Where("id = ? AND status = ?", id, model.GamblingStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"successful": successful,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gamblingRepository) ListByAssignment(ctx context.Context, userID, assignmentID uint64) ([]model.GamblingPoints, error) {
	var list []model.GamblingPoints
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND assignment_id = ?", userID, assignmentID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gamblingRepository) ListByAssignments(ctx context.Context, userID uint64, assignmentIDs []uint64) ([]model.GamblingPoints, error) {
	var list []model.GamblingPoints
	if len(assignmentIDs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND assignment_id IN ?", userID, assignmentIDs).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gamblingRepository) ListByType(ctx context.Context, userID, gamblingTypeID uint64) ([]model.GamblingPoints, error) {
	var list []model.GamblingPoints
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND gambling_type_id = ?", userID, gamblingTypeID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gamblingRepository) ListForActiveTypes(ctx context.Context, userID uint64) ([]model.GamblingPoints, error) {
	var list []model.GamblingPoints
	if err := r.db.WithContext(ctx).
		Joins("JOIN gambling_types ON gambling_types.id = gambling_points.gambling_type_id").
		Where("gambling_points.user_id = ? AND gambling_types.is_active = ?", userID, true).
		Order("gambling_points.id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
