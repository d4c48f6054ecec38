package handlers

import (
	"net/http"

	"github.com/askforum/backend/internal/authz"
	"github.com/askforum/backend/internal/middleware"
	"github.com/askforum/backend/internal/models"
	"github.com/askforum/backend/internal/repositories"
	"github.com/askforum/backend/internal/serializers"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments.
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	questionRepository repositories.QuestionRepository
	userRepository     repositories.UserRepository
	gate               authz.Gate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentRepo repositories.CommentRepository, questionRepo repositories.QuestionRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		questionRepository: questionRepo,
		userRepository:     userRepo,
		gate: authz.NewGate(
			authz.AuthenticatedOrReadOnly{},
			authz.OwnerOrAdminOrReadOnly{},
			authz.CommentFieldAccess{},
		),
	}
}

// RegisterCommentRoutes registers comment-related routes.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("", h.CreateComment)
	g.GET("", h.ListComments)
	g.GET("/:id", h.RetrieveQuestionComments)
	g.PUT("/:id", h.UpdateComment)
	g.PATCH("/:id", h.UpdateComment)
	g.DELETE("/:id", h.DeleteComment)
}

func (h *CommentHandler) input(c echo.Context, action models.Action, fields map[string]bool) authz.Input {
	return authz.Input{
		Actor:  middleware.Actor(c),
		Method: c.Request().Method,
		Action: action,
		Fields: fields,
	}
}

// CreateComment creates a comment under a question. The author defaults to
// the requesting user; when the commenter is not the question's author, the
// author is notified in the same transaction.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	in := h.input(c, models.ActionCreate, nil)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForComment(in.Action).(*models.CreateCommentRequest)
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

	if _, err := h.questionRepository.GetQuestionByID(req.QuestionID); err != nil {
		return storageError(err, "Question not found")
	}

	comment := &models.Comment{
		Content:    req.Content,
		AuthorID:   authorID,
		QuestionID: req.QuestionID,
	}
	if err := h.commentRepository.CreateCommentWithNotification(comment); err != nil {
		return storageError(err, "Question not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewCommentView(comment))
}

// ListComments returns comments, honoring limit/skip.
func (h *CommentHandler) ListComments(c echo.Context) error {
	limit, skip := limitSkip(c)
	comments, err := h.commentRepository.GetComments(limit, skip)
	if err != nil {
		return storageError(err, "Comment not found")
	}
	return c.JSON(http.StatusOK, serializers.NewCommentViews(comments))
}

// RetrieveQuestionComments returns all comments under question :id.
func (h *CommentHandler) RetrieveQuestionComments(c echo.Context) error {
	questionID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, qerr := h.questionRepository.GetQuestionByID(questionID); qerr != nil {
		return storageError(qerr, "Question not found")
	}
	comments, cerr := h.commentRepository.GetCommentsByQuestionID(questionID)
	if cerr != nil {
		return storageError(cerr, "Comment not found")
	}
	return c.JSON(http.StatusOK, serializers.NewCommentViews(comments))
}

// UpdateComment changes a comment. Content edits are the commenter's
// privilege; marking an accepted answer is the question author's.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	action := models.ActionUpdate
	if c.Request().Method == http.MethodPatch {
		action = models.ActionPartialUpdate
	}

	req, ok := serializers.RequestForComment(action).(*models.UpdateCommentRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	in := h.input(c, action, req.Fields())
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, cerr := h.commentRepository.GetCommentByID(id)
	if cerr != nil {
		return storageError(cerr, "Comment not found")
	}
	if d := h.gate.CheckObject(in, comment); !d.Allowed {
		return deny(in, d)
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.IsAnswer != nil {
		comment.IsAnswer = *req.IsAnswer
	}
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return storageError(err, "Comment not found")
	}
	return c.JSON(http.StatusOK, serializers.NewCommentView(comment))
}

// DeleteComment removes a comment.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	in := h.input(c, models.ActionDestroy, nil)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, cerr := h.commentRepository.GetCommentByID(id)
	if cerr != nil {
		return storageError(cerr, "Comment not found")
	}
	if d := h.gate.CheckObject(in, comment); !d.Allowed {
		return deny(in, d)
	}
	if err := h.commentRepository.DeleteComment(id); err != nil {
		return storageError(err, "Comment not found")
	}
	return c.NoContent(http.StatusNoContent)
}
