package handlers

import (
	"net/http"
	"strconv"

	"github.com/askforum/backend/internal/authz"
	"github.com/askforum/backend/internal/middleware"
	"github.com/askforum/backend/internal/models"
	"github.com/askforum/backend/internal/repositories"
	"github.com/askforum/backend/internal/serializers"
	"github.com/labstack/echo/v4"
)

// QuestionHandler handles HTTP requests related to questions.
type QuestionHandler struct {
	questionRepository repositories.QuestionRepository
	tagRepository      repositories.TagRepository
	userRepository     repositories.UserRepository
	gate               authz.Gate
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionRepo repositories.QuestionRepository, tagRepo repositories.TagRepository, userRepo repositories.UserRepository) *QuestionHandler {
	return &QuestionHandler{
		questionRepository: questionRepo,
		tagRepository:      tagRepo,
		userRepository:     userRepo,
		gate: authz.NewGate(
			authz.AuthenticatedOrReadOnly{},
			authz.OwnerOrAdminOrReadOnly{},
		),
	}
}

// RegisterQuestionRoutes registers question-related routes.
func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("", h.CreateQuestion)
	g.GET("", h.ListQuestions)
	g.GET("/:id", h.RetrieveQuestion)
	g.PUT("/:id", h.UpdateQuestion)
	g.PATCH("/:id", h.UpdateQuestion)
	g.DELETE("/:id", h.DeleteQuestion)
	g.PATCH("/:id/views", h.UpdateViews)
	g.GET("/:user_id/user", h.QuestionsByUser)
}

func (h *QuestionHandler) input(c echo.Context, action models.Action) authz.Input {
	return authz.Input{Actor: middleware.Actor(c), Method: c.Request().Method, Action: action}
}

// CreateQuestion creates a question, reconciling submitted tag labels into
// persisted tags. The author defaults to the requesting user.
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	in := h.input(c, models.ActionCreate)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForQuestion(in.Action).(*models.CreateQuestionRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	authorID := req.AuthorID
	if authorID == 0 {
		actor := middleware.Actor(c)
		if actor == nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "no author in request context")
		}
		authorID = actor.ID
	} else if _, err := h.userRepository.GetUserByID(authorID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "author does not exist")
	}

	tags, err := h.tagRepository.EnsureTags(req.Tags)
	if err != nil {
		return storageError(err, "Tag not found")
	}

	question := &models.Question{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	if err := h.questionRepository.CreateQuestion(question, tags); err != nil {
		return storageError(err, "Question not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewQuestionView(question))
}

// ListQuestions returns questions, honoring the title/tag/order filters and
// limit/skip.
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	filter := models.QuestionFilter{
		ByTitle: c.QueryParam("by_title"),
		Tag:     c.QueryParam("tag"),
	}
	if order := c.QueryParam("order_by_date"); order != "" {
		if order != "asc" && order != "desc" {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "order_by_date must be 'asc' or 'desc'")
		}
		filter.OrderByDate = order
	}
	if v := c.QueryParam("order_by_views"); v != "" {
		byViews, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "order_by_views must be a boolean")
		}
		filter.OrderByViews = byViews
	}
	filter.Limit, filter.Skip = limitSkip(c)

	questions, err := h.questionRepository.GetQuestions(filter)
	if err != nil {
		return storageError(err, "Question not found")
	}
	return c.JSON(http.StatusOK, serializers.NewQuestionViews(questions))
}

// RetrieveQuestion returns a question by ID.
func (h *QuestionHandler) RetrieveQuestion(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	question, qerr := h.questionRepository.GetQuestionByID(id)
	if qerr != nil {
		return storageError(qerr, "Question not found")
	}
	return c.JSON(http.StatusOK, serializers.NewQuestionView(question))
}

// UpdateQuestion changes a question. Only the author or an admin may write.
// A tags field, when present, replaces the association with the reconciled
// set.
func (h *QuestionHandler) UpdateQuestion(c echo.Context) error {
	action := models.ActionUpdate
	if c.Request().Method == http.MethodPatch {
		action = models.ActionPartialUpdate
	}
	in := h.input(c, action)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	question, qerr := h.questionRepository.GetQuestionByID(id)
	if qerr != nil {
		return storageError(qerr, "Question not found")
	}
	if d := h.gate.CheckObject(in, question); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForQuestion(action).(*models.UpdateQuestionRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Views != nil {
		question.Views = *req.Views
	}

	var tags []models.Tag
	replaceTags := req.Tags != nil
	if replaceTags {
		tags, err = h.tagRepository.EnsureTags(req.Tags)
		if err != nil {
			return storageError(err, "Tag not found")
		}
	}

	if err := h.questionRepository.UpdateQuestion(question, tags, replaceTags); err != nil {
		return storageError(err, "Question not found")
	}
	return c.JSON(http.StatusOK, serializers.NewQuestionView(question))
}

// DeleteQuestion removes a question.
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	in := h.input(c, models.ActionDestroy)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	question, qerr := h.questionRepository.GetQuestionByID(id)
	if qerr != nil {
		return storageError(qerr, "Question not found")
	}
	if d := h.gate.CheckObject(in, question); !d.Allowed {
		return deny(in, d)
	}
	if err := h.questionRepository.DeleteQuestion(id); err != nil {
		return storageError(err, "Question not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateViews sets the question's view counter to the submitted value. The
// front-end drives this endpoint, so it works for anonymous readers too.
func (h *QuestionHandler) UpdateViews(c echo.Context) error {
	in := h.input(c, models.ActionUpdateViews)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	raw := c.QueryParam("views")
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "views query parameter is required")
	}
	views, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "views must be a non-negative integer")
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return perr
	}
	question, qerr := h.questionRepository.GetQuestionByID(id)
	if qerr != nil {
		return storageError(qerr, "Question not found")
	}
	if d := h.gate.CheckObject(in, question); !d.Allowed {
		return deny(in, d)
	}

	if err := h.questionRepository.UpdateViews(id, views); err != nil {
		return storageError(err, "Question not found")
	}
	question.Views = views
	return c.JSON(http.StatusOK, serializers.NewQuestionView(question))
}

// QuestionsByUser returns all of a user's questions, unpaginated.
func (h *QuestionHandler) QuestionsByUser(c echo.Context) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	questions, qerr := h.questionRepository.GetQuestionsByAuthor(userID)
	if qerr != nil {
		return storageError(qerr, "Question not found")
	}
	return c.JSON(http.StatusOK, serializers.NewQuestionViews(questions))
}
