package repositories

import (
	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	CreateCommentWithNotification(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetComments(limit, skip int) ([]models.Comment, error)
	GetCommentsByQuestionID(questionID uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL.
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateCommentWithNotification creates the comment and, when the commenter
// is not the question's author, exactly one notification for the author. Both
// writes share one transaction: a failed notification rolls back the comment.
func (r *PostgresCommentRepository) CreateCommentWithNotification(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, comment.QuestionID).Error; err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		var commenter models.User
		if err := tx.First(&commenter, comment.AuthorID).Error; err != nil {
			return err
		}
		notification := models.NotificationForComment(comment, &question, &commenter)
		if notification == nil {
			return nil
		}
		return tx.Create(notification).Error
	})
}

// GetCommentByID retrieves a comment with its question loaded, so field-level
// checks can see the question's author.
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Question").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComments retrieves comments. limit <= 0 means no limit.
func (r *PostgresCommentRepository) GetComments(limit, skip int) ([]models.Comment, error) {
	var comments []models.Comment
	q := r.db.Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByQuestionID retrieves all comments under a question.
func (r *PostgresCommentRepository) GetCommentsByQuestionID(questionID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("question_id = ?", questionID).Order("id").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates an existing comment.
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Omit("Question", "Author").Save(comment).Error
}

// DeleteComment deletes a comment by ID.
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
