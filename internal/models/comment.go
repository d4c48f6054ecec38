package models

import "time"

// Comment is a reply under a question. IsAnswer marks the accepted answer and
// may only be set by the question's author (or an admin).
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime"`
	IsAnswer    bool      `json:"is_answer" gorm:"default:false"`
	AuthorID    uint      `json:"author_id" gorm:"index"`
	Author      User      `json:"-"`
	QuestionID  uint      `json:"question_id" gorm:"index"`
	Question    Question  `json:"-"`
}

// OwnerID returns the comment author's ID for ownership checks.
func (c *Comment) OwnerID() uint { return c.AuthorID }

// CreateCommentRequest defines the request body for creating a comment.
// AuthorID defaults to the requesting user when omitted.
type CreateCommentRequest struct {
	Content    string `json:"content" validate:"required"`
	QuestionID uint   `json:"question_id" validate:"required"`
	AuthorID   uint   `json:"author_id,omitempty"`
}

// UpdateCommentRequest defines the request body for changing a comment.
// Which fields are present drives the field-level authorization rule, so
// pointers distinguish "absent" from zero values.
type UpdateCommentRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1"`
	IsAnswer *bool   `json:"is_answer,omitempty"`
}

// Fields returns the set of body fields present, for field-level rules.
func (r UpdateCommentRequest) Fields() map[string]bool {
	fields := map[string]bool{}
	if r.Content != nil {
		fields["content"] = true
	}
	if r.IsAnswer != nil {
		fields["is_answer"] = true
	}
	return fields
}
