package repositories

import (
	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations,
// including the like/dislike membership sets the rating toggle drives.
type ArticleRepository interface {
	CreateArticle(article *models.Article) error
	GetArticleByID(id uint) (*models.Article, error)
	GetArticles(limit, skip int) ([]models.Article, error)
	UpdateArticle(article *models.Article) error
	DeleteArticle(id uint) error
	HasReaction(articleID, userID uint, action models.RatingAction) (bool, error)
	AddReaction(article *models.Article, user *models.User, action models.RatingAction) error
	RemoveReaction(article *models.Article, user *models.User, action models.RatingAction) error
}

// PostgresArticleRepository implements ArticleRepository for PostgreSQL.
type PostgresArticleRepository struct {
	db *gorm.DB
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(db *gorm.DB) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db}
}

// CreateArticle creates an article.
func (r *PostgresArticleRepository) CreateArticle(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetArticleByID retrieves an article with both reaction sets loaded.
func (r *PostgresArticleRepository) GetArticleByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.Preload("Likes").Preload("Dislikes").First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// GetArticles retrieves articles newest-first with reaction sets
// batch-loaded. limit <= 0 means no limit.
func (r *PostgresArticleRepository) GetArticles(limit, skip int) ([]models.Article, error) {
	var articles []models.Article
	q := r.db.Preload("Likes").Preload("Dislikes").Order("date_created DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// UpdateArticle updates an existing article without touching the reaction
// sets.
func (r *PostgresArticleRepository) UpdateArticle(article *models.Article) error {
	return r.db.Omit("Likes", "Dislikes").Save(article).Error
}

// DeleteArticle deletes an article by ID.
func (r *PostgresArticleRepository) DeleteArticle(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

func associationName(action models.RatingAction) string {
	if action == models.RatingLikes {
		return "Likes"
	}
	return "Dislikes"
}

// HasReaction reports whether the user is a member of the given reaction set.
func (r *PostgresArticleRepository) HasReaction(articleID, userID uint, action models.RatingAction) (bool, error) {
	table := "article_likes"
	if action == models.RatingDislikes {
		table = "article_dislikes"
	}
	var count int64
	err := r.db.Table(table).Where("article_id = ? AND user_id = ?", articleID, userID).Count(&count).Error
	return count > 0, err
}

// AddReaction adds the user to a reaction set. The join table's primary key
// makes a duplicate add a no-op at the storage layer.
func (r *PostgresArticleRepository) AddReaction(article *models.Article, user *models.User, action models.RatingAction) error {
	return r.db.Model(article).Association(associationName(action)).Append(user)
}

// RemoveReaction removes the user from a reaction set.
func (r *PostgresArticleRepository) RemoveReaction(article *models.Article, user *models.User, action models.RatingAction) error {
	return r.db.Model(article).Association(associationName(action)).Delete(user)
}
