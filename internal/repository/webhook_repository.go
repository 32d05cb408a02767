package repository

import (
	"context"

	"github.com/shinyyama/podcast-backend/internal/model"
	"gorm.io/gorm"
)

type WebhookRepository interface {
	Create(ctx context.Context, w *model.Webhook) error
	List(ctx context.Context) ([]model.Webhook, error)
	Delete(ctx context.Context, id string) error
}

type webhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(ctx context.Context, w *model.Webhook) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *webhookRepository) List(ctx context.Context) ([]model.Webhook, error) {
	var list []model.Webhook
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *webhookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Webhook{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
