package repositories

import (
	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question data operations.
type QuestionRepository interface {
	CreateQuestion(question *models.Question, tags []models.Tag) error
	GetQuestionByID(id uint) (*models.Question, error)
	GetQuestions(filter models.QuestionFilter) ([]models.Question, error)
	GetQuestionsByAuthor(authorID uint) ([]models.Question, error)
	UpdateQuestion(question *models.Question, tags []models.Tag, replaceTags bool) error
	UpdateViews(id uint, views uint64) error
	DeleteQuestion(id uint) error
}

// PostgresQuestionRepository implements QuestionRepository for PostgreSQL.
type PostgresQuestionRepository struct {
	db *gorm.DB
}

// NewPostgresQuestionRepository creates a new PostgresQuestionRepository.
func NewPostgresQuestionRepository(db *gorm.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

// CreateQuestion creates a question and associates the reconciled tag set in
// one transaction.
func (r *PostgresQuestionRepository) CreateQuestion(question *models.Question, tags []models.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(question).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(question).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		question.Tags = tags
		return nil
	})
}

// GetQuestionByID retrieves a question with its tags batch-loaded.
func (r *PostgresQuestionRepository) GetQuestionByID(id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.Preload("Tags").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// GetQuestions retrieves questions matching the filter, tags batch-loaded to
// avoid per-row fan-out on list responses.
func (r *PostgresQuestionRepository) GetQuestions(filter models.QuestionFilter) ([]models.Question, error) {
	q := r.db.Preload("Tags").Model(&models.Question{})

	if filter.ByTitle != "" {
		q = q.Where("title ILIKE ?", "%"+filter.ByTitle+"%")
	}
	if filter.Tag != "" {
		q = q.Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.title = ?", filter.Tag)
	}
	switch {
	case filter.OrderByViews:
		q = q.Order("views DESC")
	case filter.OrderByDate == "asc":
		q = q.Order("date_created ASC")
	case filter.OrderByDate == "desc":
		q = q.Order("date_created DESC")
	default:
		q = q.Order("id")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}

	var questions []models.Question
	if err := q.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestionsByAuthor retrieves all questions by one author, unpaginated.
func (r *PostgresQuestionRepository) GetQuestionsByAuthor(authorID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.Preload("Tags").Where("author_id = ?", authorID).Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// UpdateQuestion saves the question and, when replaceTags is set, replaces
// the tag association with the given set in the same transaction. A nil tag
// slice with replaceTags clears all associations.
func (r *PostgresQuestionRepository) UpdateQuestion(question *models.Question, tags []models.Tag, replaceTags bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(question).Error; err != nil {
			return err
		}
		if replaceTags {
			if err := tx.Model(question).Association("Tags").Replace(tags); err != nil {
				return err
			}
			question.Tags = tags
		}
		return nil
	})
}

// UpdateViews sets the view counter to the submitted value.
func (r *PostgresQuestionRepository) UpdateViews(id uint, views uint64) error {
	return r.db.Model(&models.Question{}).Where("id = ?", id).Update("views", views).Error
}

// DeleteQuestion deletes a question by ID.
func (r *PostgresQuestionRepository) DeleteQuestion(id uint) error {
	return r.db.Delete(&models.Question{}, id).Error
}
