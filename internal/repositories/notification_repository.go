package repositories

import (
	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	GetNotifications(limit, skip int) ([]models.Notification, error)
	GetNotificationsByRecipient(userID uint) ([]models.Notification, error)
	UpdateNotification(notification *models.Notification) error
	DeleteNotification(id uint) error
}

// PostgresNotificationRepository implements NotificationRepository for
// PostgreSQL.
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateNotification creates a notification.
func (r *PostgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationByID retrieves a notification by ID.
func (r *PostgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetNotifications retrieves notifications. limit <= 0 means no limit.
func (r *PostgresNotificationRepository) GetNotifications(limit, skip int) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetNotificationsByRecipient retrieves all notifications addressed to a user.
func (r *PostgresNotificationRepository) GetNotificationsByRecipient(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UpdateNotification updates an existing notification.
func (r *PostgresNotificationRepository) UpdateNotification(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// DeleteNotification deletes a notification by ID.
func (r *PostgresNotificationRepository) DeleteNotification(id uint) error {
	return r.db.Delete(&models.Notification{}, id).Error
}
