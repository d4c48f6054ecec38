package models

import "fmt"

// Notification tells a question author that someone commented. In the common
// path rows are created only as a side effect of comment creation; the write
// endpoints exist for admins.
type Notification struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Title      string   `json:"title" gorm:"size:256"`
	UserID     uint     `json:"user_id" gorm:"index"` // recipient
	User       User     `json:"-"`
	QuestionID uint     `json:"question_id" gorm:"index"`
	Question   Question `json:"-"`
}

// NotificationForComment derives the notification a freshly created comment
// produces for the question's author, or nil when the commenter is the
// author themselves.
func NotificationForComment(comment *Comment, question *Question, commenter *User) *Notification {
	if comment.AuthorID == question.AuthorID {
		return nil
	}
	return &Notification{
		Title:      fmt.Sprintf("User %s commented your question: %q.", commenter.Username, question.Title),
		UserID:     question.AuthorID,
		QuestionID: question.ID,
	}
}

// CreateNotificationRequest defines the request body for creating or updating
// a notification directly.
type CreateNotificationRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=256"`
	UserID     uint   `json:"user_id" validate:"required"`
	QuestionID uint   `json:"question_id" validate:"required"`
}
