package serializers

import (
	"time"

	"github.com/askforum/backend/internal/models"
)

// RoleView is the canonical read shape for roles.
type RoleView struct {
	ID    uint            `json:"id"`
	Title string          `json:"title"`
	Kind  models.RoleKind `json:"kind"`
}

func NewRoleView(r models.Role) RoleView {
	return RoleView{ID: r.ID, Title: r.Title, Kind: r.Kind}
}

func NewRoleViews(roles []models.Role) []RoleView {
	views := make([]RoleView, len(roles))
	for i, r := range roles {
		views[i] = NewRoleView(r)
	}
	return views
}

// UserView is the canonical read shape for users. The password hash never
// appears in any projection.
type UserView struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DateCreated  time.Time `json:"date_created"`
	ProfileImage string    `json:"profile_image"`
	Role         RoleView  `json:"role"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		DateCreated:  u.DateCreated,
		ProfileImage: u.ProfileImage,
		Role:         NewRoleView(u.Role),
	}
}

func NewUserViews(users []models.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = NewUserView(&users[i])
	}
	return views
}

// TagRef is the nested tag shape inside a question.
type TagRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// QuestionView is the canonical read shape for questions.
type QuestionView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Views       uint64    `json:"views"`
	AuthorID    uint      `json:"author_id"`
	Tags        []TagRef  `json:"tags"`
}

func NewQuestionView(q *models.Question) QuestionView {
	tags := make([]TagRef, len(q.Tags))
	for i, t := range q.Tags {
		tags[i] = TagRef{ID: t.ID, Title: t.Title}
	}
	return QuestionView{
		ID:          q.ID,
		Title:       q.Title,
		Content:     q.Content,
		DateCreated: q.DateCreated,
		Views:       q.Views,
		AuthorID:    q.AuthorID,
		Tags:        tags,
	}
}

func NewQuestionViews(questions []models.Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i := range questions {
		views[i] = NewQuestionView(&questions[i])
	}
	return views
}

// TagView is the canonical read shape for tags, including the questions that
// carry the tag.
type TagView struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Questions []QuestionView `json:"questions"`
}

func NewTagView(t *models.Tag) TagView {
	return TagView{ID: t.ID, Title: t.Title, Questions: NewQuestionViews(t.Questions)}
}

func NewTagViews(tags []models.Tag) []TagView {
	views := make([]TagView, len(tags))
	for i := range tags {
		views[i] = NewTagView(&tags[i])
	}
	return views
}

// CommentView is the canonical read shape for comments.
type CommentView struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	IsAnswer    bool      `json:"is_answer"`
	AuthorID    uint      `json:"author_id"`
	QuestionID  uint      `json:"question_id"`
}

func NewCommentView(c *models.Comment) CommentView {
	return CommentView{
		ID:          c.ID,
		Content:     c.Content,
		DateCreated: c.DateCreated,
		IsAnswer:    c.IsAnswer,
		AuthorID:    c.AuthorID,
		QuestionID:  c.QuestionID,
	}
}

func NewCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, len(comments))
	for i := range comments {
		views[i] = NewCommentView(&comments[i])
	}
	return views
}

// NotificationView is the canonical read shape for notifications.
type NotificationView struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	UserID     uint   `json:"user_id"`
	QuestionID uint   `json:"question_id"`
}

func NewNotificationView(n *models.Notification) NotificationView {
	return NotificationView{ID: n.ID, Title: n.Title, UserID: n.UserID, QuestionID: n.QuestionID}
}

func NewNotificationViews(notifications []models.Notification) []NotificationView {
	views := make([]NotificationView, len(notifications))
	for i := range notifications {
		views[i] = NewNotificationView(&notifications[i])
	}
	return views
}

// ArticleView is the canonical read shape for articles. Reactions project as
// user ID lists.
type ArticleView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Likes       []uint    `json:"likes"`
	Dislikes    []uint    `json:"dislikes"`
}

func NewArticleView(a *models.Article) ArticleView {
	return ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		DateCreated: a.DateCreated,
		Likes:       userIDs(a.Likes),
		Dislikes:    userIDs(a.Dislikes),
	}
}

func NewArticleViews(articles []models.Article) []ArticleView {
	views := make([]ArticleView, len(articles))
	for i := range articles {
		views[i] = NewArticleView(&articles[i])
	}
	return views
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
