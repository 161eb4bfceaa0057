package repository

import (
	"context"

	"gorm.io/gorm"
	"venue-booking-service/models"
)

// NotificationRepository stores the webhook audit log.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.PaymentNotification) error
	FindByGatewayPaymentID(ctx context.Context, paymentID string) ([]models.PaymentNotification, error)
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *models.PaymentNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *GormNotificationRepository) FindByGatewayPaymentID(ctx context.Context, paymentID string) ([]models.PaymentNotification, error) {
	var out []models.PaymentNotification
	if err := r.db.WithContext(ctx).
		Where("gateway_payment_id = ?", paymentID).
		Order("received_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
