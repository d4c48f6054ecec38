package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/askforum/backend/internal/middleware"
	"github.com/askforum/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the storage semantics the handlers
// rely on, including gorm's sentinel errors, so tests need no database.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsers(limit, skip int) ([]models.User, error) {
	var users []models.User
	for id := uint(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	return paginate(users, limit, skip), nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

type fakeRoleRepo struct {
	roles  map[uint]*models.Role
	nextID uint
}

func newFakeRoleRepo(roles ...*models.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[uint]*models.Role{}, nextID: 1}
	for _, role := range roles {
		if role.ID >= r.nextID {
			r.nextID = role.ID + 1
		}
		r.roles[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) CreateRole(role *models.Role) error {
	role.ID = r.nextID
	r.nextID++
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) GetRoleByID(id uint) (*models.Role, error) {
	if role, ok := r.roles[id]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) GetRoleByKind(kind models.RoleKind) (*models.Role, error) {
	for id := uint(1); id < r.nextID; id++ {
		if role, ok := r.roles[id]; ok && role.Kind == kind {
			return role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	for id := uint(1); id < r.nextID; id++ {
		if role, ok := r.roles[id]; ok {
			roles = append(roles, *role)
		}
	}
	return roles, nil
}

func (r *fakeRoleRepo) UpdateRole(role *models.Role) error {
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) DeleteRole(id uint) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) EnsureRole(title string, kind models.RoleKind) (*models.Role, error) {
	for _, role := range r.roles {
		if role.Title == title {
			return role, nil
		}
	}
	role := &models.Role{Title: title, Kind: kind}
	if err := r.CreateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}

type fakeTagRepo struct {
	tags    map[string]*models.Tag
	nextID  uint
	created int
}

func newFakeTagRepo(titles ...string) *fakeTagRepo {
	r := &fakeTagRepo{tags: map[string]*models.Tag{}, nextID: 1}
	for _, title := range titles {
		r.tags[title] = &models.Tag{ID: r.nextID, Title: title}
		r.nextID++
	}
	return r
}

func (r *fakeTagRepo) CreateTag(tag *models.Tag) error {
	if _, ok := r.tags[tag.Title]; ok {
		return gorm.ErrDuplicatedKey
	}
	tag.ID = r.nextID
	r.nextID++
	r.tags[tag.Title] = tag
	r.created++
	return nil
}

func (r *fakeTagRepo) GetTagByID(id uint) (*models.Tag, error) {
	for _, tag := range r.tags {
		if tag.ID == id {
			return tag, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) GetTagByTitle(title string) (*models.Tag, error) {
	if tag, ok := r.tags[title]; ok {
		return tag, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) GetTags(limit, skip int) ([]models.Tag, error) {
	var tags []models.Tag
	for id := uint(1); id < r.nextID; id++ {
		for _, tag := range r.tags {
			if tag.ID == id {
				tags = append(tags, *tag)
			}
		}
	}
	return paginate(tags, limit, skip), nil
}

func (r *fakeTagRepo) UpdateTag(tag *models.Tag) error {
	r.tags[tag.Title] = tag
	return nil
}

func (r *fakeTagRepo) DeleteTag(id uint) error {
	for title, tag := range r.tags {
		if tag.ID == id {
			delete(r.tags, title)
		}
	}
	return nil
}

func (r *fakeTagRepo) EnsureTags(titles []string) ([]models.Tag, error) {
	seen := map[string]bool{}
	var tags []models.Tag
	for _, title := range titles {
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		tag, ok := r.tags[title]
		if !ok {
			tag = &models.Tag{Title: title}
			if err := r.CreateTag(tag); err != nil {
				return nil, err
			}
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

type fakeQuestionRepo struct {
	questions map[uint]*models.Question
	nextID    uint
}

func newFakeQuestionRepo(questions ...*models.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: map[uint]*models.Question{}, nextID: 1}
	for _, q := range questions {
		if q.ID >= r.nextID {
			r.nextID = q.ID + 1
		}
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) CreateQuestion(question *models.Question, tags []models.Tag) error {
	question.ID = r.nextID
	r.nextID++
	question.Tags = tags
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetQuestionByID(id uint) (*models.Question, error) {
	if q, ok := r.questions[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) GetQuestions(filter models.QuestionFilter) ([]models.Question, error) {
	var questions []models.Question
	for id := uint(1); id < r.nextID; id++ {
		q, ok := r.questions[id]
		if !ok {
			continue
		}
		if filter.ByTitle != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(filter.ByTitle)) {
			continue
		}
		if filter.Tag != "" && !hasTag(q, filter.Tag) {
			continue
		}
		questions = append(questions, *q)
	}
	return paginate(questions, filter.Limit, filter.Skip), nil
}

func hasTag(q *models.Question, title string) bool {
	for _, t := range q.Tags {
		if t.Title == title {
			return true
		}
	}
	return false
}

func (r *fakeQuestionRepo) GetQuestionsByAuthor(authorID uint) ([]models.Question, error) {
	var questions []models.Question
	for id := uint(1); id < r.nextID; id++ {
		if q, ok := r.questions[id]; ok && q.AuthorID == authorID {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}

func (r *fakeQuestionRepo) UpdateQuestion(question *models.Question, tags []models.Tag, replaceTags bool) error {
	stored, ok := r.questions[question.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if replaceTags {
		question.Tags = tags
	} else {
		question.Tags = stored.Tags
	}
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) UpdateViews(id uint, views uint64) error {
	q, ok := r.questions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.Views = views
	return nil
}

func (r *fakeQuestionRepo) DeleteQuestion(id uint) error {
	delete(r.questions, id)
	return nil
}

type fakeCommentRepo struct {
	comments      map[uint]*models.Comment
	nextID        uint
	questions     *fakeQuestionRepo
	users         *fakeUserRepo
	notifications []*models.Notification
}

func newFakeCommentRepo(questions *fakeQuestionRepo, users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1, questions: questions, users: users}
}

func (r *fakeCommentRepo) CreateCommentWithNotification(comment *models.Comment) error {
	question, err := r.questions.GetQuestionByID(comment.QuestionID)
	if err != nil {
		return err
	}
	commenter, err := r.users.GetUserByID(comment.AuthorID)
	if err != nil {
		return err
	}
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	if n := models.NotificationForComment(comment, question, commenter); n != nil {
		r.notifications = append(r.notifications, n)
	}
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	if q, err := r.questions.GetQuestionByID(c.QuestionID); err == nil {
		copied.Question = *q
	}
	return &copied, nil
}

func (r *fakeCommentRepo) GetComments(limit, skip int) ([]models.Comment, error) {
	var comments []models.Comment
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.comments[id]; ok {
			comments = append(comments, *c)
		}
	}
	return paginate(comments, limit, skip), nil
}

func (r *fakeCommentRepo) GetCommentsByQuestionID(questionID uint) ([]models.Comment, error) {
	var comments []models.Comment
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.QuestionID == questionID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *comment
	stored.Question = models.Question{}
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	delete(r.comments, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications map[uint]*models.Notification
	nextID        uint
}

func newFakeNotificationRepo(notifications ...*models.Notification) *fakeNotificationRepo {
	r := &fakeNotificationRepo{notifications: map[uint]*models.Notification{}, nextID: 1}
	for _, n := range notifications {
		if n.ID >= r.nextID {
			r.nextID = n.ID + 1
		}
		r.notifications[n.ID] = n
	}
	return r
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	n.ID = r.nextID
	r.nextID++
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	if n, ok := r.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) GetNotifications(limit, skip int) ([]models.Notification, error) {
	var notifications []models.Notification
	for id := uint(1); id < r.nextID; id++ {
		if n, ok := r.notifications[id]; ok {
			notifications = append(notifications, *n)
		}
	}
	return paginate(notifications, limit, skip), nil
}

func (r *fakeNotificationRepo) GetNotificationsByRecipient(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	for id := uint(1); id < r.nextID; id++ {
		if n, ok := r.notifications[id]; ok && n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) UpdateNotification(n *models.Notification) error {
	if _, ok := r.notifications[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(id uint) error {
	delete(r.notifications, id)
	return nil
}

type fakeArticleRepo struct {
	articles map[uint]*models.Article
	nextID   uint
}

func newFakeArticleRepo(articles ...*models.Article) *fakeArticleRepo {
	r := &fakeArticleRepo{articles: map[uint]*models.Article{}, nextID: 1}
	for _, a := range articles {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		r.articles[a.ID] = a
	}
	return r
}

func (r *fakeArticleRepo) CreateArticle(article *models.Article) error {
	article.ID = r.nextID
	r.nextID++
	r.articles[article.ID] = article
	return nil
}

func (r *fakeArticleRepo) GetArticleByID(id uint) (*models.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeArticleRepo) GetArticles(limit, skip int) ([]models.Article, error) {
	var articles []models.Article
	for id := uint(1); id < r.nextID; id++ {
		if a, ok := r.articles[id]; ok {
			articles = append(articles, *a)
		}
	}
	return paginate(articles, limit, skip), nil
}

func (r *fakeArticleRepo) UpdateArticle(article *models.Article) error {
	stored, ok := r.articles[article.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = article.Title
	stored.Content = article.Content
	return nil
}

func (r *fakeArticleRepo) DeleteArticle(id uint) error {
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) set(articleID uint, action models.RatingAction) *[]models.User {
	a := r.articles[articleID]
	if action == models.RatingLikes {
		return &a.Likes
	}
	return &a.Dislikes
}

func (r *fakeArticleRepo) HasReaction(articleID, userID uint, action models.RatingAction) (bool, error) {
	if _, ok := r.articles[articleID]; !ok {
		return false, gorm.ErrRecordNotFound
	}
	for _, u := range *r.set(articleID, action) {
		if u.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeArticleRepo) AddReaction(article *models.Article, user *models.User, action models.RatingAction) error {
	set := r.set(article.ID, action)
	*set = append(*set, *user)
	return nil
}

func (r *fakeArticleRepo) RemoveReaction(article *models.Article, user *models.User, action models.RatingAction) error {
	set := r.set(article.ID, action)
	kept := (*set)[:0]
	for _, u := range *set {
		if u.ID != user.ID {
			kept = append(kept, u)
		}
	}
	*set = kept
	return nil
}

func paginate[T any](items []T, limit, skip int) []T {
	if skip > 0 {
		if skip >= len(items) {
			return nil
		}
		items = items[skip:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// request builds an echo context for a handler call. Path params are given as
// alternating name, value pairs.
func request(t *testing.T, method, target string, body any, actor *models.User, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(encoded))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, actor)
	}
	if len(params) >= 2 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// httpCode extracts the status from a handler result: the recorder for
// successes, the HTTPError for failures.
func httpCode(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	t.Fatalf("handler returned a non-HTTP error: %v", err)
	return 0
}
