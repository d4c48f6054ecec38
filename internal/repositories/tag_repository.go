package repositories

import (
	"errors"

	"github.com/askforum/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations, including the
// reconciliation of free-text labels into persisted rows.
type TagRepository interface {
	CreateTag(tag *models.Tag) error
	GetTagByID(id uint) (*models.Tag, error)
	GetTagByTitle(title string) (*models.Tag, error)
	GetTags(limit, skip int) ([]models.Tag, error)
	UpdateTag(tag *models.Tag) error
	DeleteTag(id uint) error
	EnsureTags(titles []string) ([]models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL.
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository.
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// CreateTag creates a new tag.
func (r *PostgresTagRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// GetTagByID retrieves a tag by ID with its questions and their tags
// batch-loaded.
func (r *PostgresTagRepository) GetTagByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Preload("Questions.Tags").First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByTitle retrieves a tag by its unique title.
func (r *PostgresTagRepository) GetTagByTitle(title string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Preload("Questions.Tags").Where("title = ?", title).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTags retrieves tags with questions batch-loaded. limit <= 0 means no
// limit.
func (r *PostgresTagRepository) GetTags(limit, skip int) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.Preload("Questions.Tags").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if err := q.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateTag updates an existing tag.
func (r *PostgresTagRepository) UpdateTag(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// DeleteTag deletes a tag by ID.
func (r *PostgresTagRepository) DeleteTag(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}

// EnsureTags resolves a set of free-text labels to persisted tags, creating
// the missing ones. Duplicate labels collapse to one row. A unique violation
// on insert means another request created the same label concurrently; the
// titles are re-fetched and the remaining complement retried once, so the
// constraint stays the single authority over tag identity.
func (r *PostgresTagRepository) EnsureTags(titles []string) ([]models.Tag, error) {
	unique := dedupe(titles)
	if len(unique) == 0 {
		return nil, nil
	}

	for attempt := 0; ; attempt++ {
		var existing []models.Tag
		if err := r.db.Where("title IN ?", unique).Find(&existing).Error; err != nil {
			return nil, err
		}
		if len(existing) == len(unique) {
			return existing, nil
		}

		missing := complement(unique, existing)
		created := make([]models.Tag, len(missing))
		for i, title := range missing {
			created[i] = models.Tag{Title: title}
		}
		err := r.db.Create(&created).Error
		if err == nil {
			return append(existing, created...), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt > 0 {
			return nil, err
		}
	}
}

func dedupe(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	unique := make([]string, 0, len(titles))
	for _, t := range titles {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}
	return unique
}

func complement(titles []string, existing []models.Tag) []string {
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Title] = true
	}
	var missing []string
	for _, t := range titles {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
