package models

import "time"

// Tag labels questions. Titles are globally unique; the unique index is the
// authority when two requests create the same label concurrently.
type Tag struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"size:64;uniqueIndex"`
	Questions []Question `json:"-" gorm:"many2many:question_tags"`
}

// Question is a forum question with free-form tags.
type Question struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime"`
	Views       uint64    `json:"views" gorm:"default:0"`
	AuthorID    uint      `json:"author_id" gorm:"index"`
	Author      User      `json:"-"`
	Tags        []Tag     `json:"tags" gorm:"many2many:question_tags"`
}

// OwnerID returns the question author's ID for ownership checks.
func (q *Question) OwnerID() uint { return q.AuthorID }

// CreateQuestionRequest defines the request body for creating a question.
// AuthorID defaults to the requesting user when omitted.
type CreateQuestionRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=256"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=64"`
	AuthorID uint     `json:"author_id,omitempty"`
}

// UpdateQuestionRequest defines the request body for changing a question.
// A nil Tags slice leaves the association untouched; an empty one clears it.
type UpdateQuestionRequest struct {
	Title   *string  `json:"title,omitempty" validate:"omitempty,min=1,max=256"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=64"`
	Views   *uint64  `json:"views,omitempty"`
}

// CreateTagRequest defines the request body for creating or updating a tag.
type CreateTagRequest struct {
	Title string `json:"title" validate:"required,min=1,max=64"`
}

// QuestionFilter carries the supported question list filters. Zero values
// mean "not set".
type QuestionFilter struct {
	ByTitle      string // substring match on title, case-insensitive
	OrderByDate  string // "asc" or "desc"
	OrderByViews bool
	Tag          string // exact tag title
	Limit        int
	Skip         int
}
