package models

import "time"

// RatingAction names one of the two article reaction sets.
type RatingAction string

const (
	RatingLikes    RatingAction = "likes"
	RatingDislikes RatingAction = "dislikes"
)

// Valid reports whether the action is a known reaction set.
func (a RatingAction) Valid() bool {
	return a == RatingLikes || a == RatingDislikes
}

// Opposite returns the other reaction set.
func (a RatingAction) Opposite() RatingAction {
	if a == RatingLikes {
		return RatingDislikes
	}
	return RatingLikes
}

// Article is a news entry users can like or dislike. A user belongs to at
// most one of the two sets for a given article; the rating toggle maintains
// that procedurally.
type Article struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime"`
	Likes       []User    `json:"likes" gorm:"many2many:article_likes"`
	Dislikes    []User    `json:"dislikes" gorm:"many2many:article_dislikes"`
}

// CreateArticleRequest defines the request body for creating or updating an
// article.
type CreateArticleRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=256"`
	Content string `json:"content" validate:"required"`
}
