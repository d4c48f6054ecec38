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

// TagHandler handles HTTP requests related to tags. Reads are open; writes
// are admin-only.
type TagHandler struct {
	tagRepository repositories.TagRepository
	gate          authz.Gate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{
		tagRepository: tagRepo,
		gate:          authz.NewGate(authz.AdminOrReadOnly{}),
	}
}

// RegisterTagRoutes registers tag-related routes.
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("", h.CreateTag)
	g.GET("", h.ListTags)
	g.GET("/:key", h.RetrieveTag)
	g.PUT("/:key", h.UpdateTag)
	g.PATCH("/:key", h.UpdateTag)
	g.DELETE("/:key", h.DeleteTag)
}

func (h *TagHandler) check(c echo.Context, action models.Action) *echo.HTTPError {
	in := authz.Input{Actor: middleware.Actor(c), Method: c.Request().Method, Action: action}
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	return nil
}

// CreateTag creates a tag.
func (h *TagHandler) CreateTag(c echo.Context) error {
	if err := h.check(c, models.ActionCreate); err != nil {
		return err
	}

	req, ok := serializers.RequestForTag(models.ActionCreate).(*models.CreateTagRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	tag := &models.Tag{Title: req.Title}
	if err := h.tagRepository.CreateTag(tag); err != nil {
		return storageError(err, "Tag not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewTagView(tag))
}

// ListTags returns tags with their questions, honoring limit/skip.
func (h *TagHandler) ListTags(c echo.Context) error {
	limit, skip := limitSkip(c)
	tags, err := h.tagRepository.GetTags(limit, skip)
	if err != nil {
		return storageError(err, "Tag not found")
	}
	return c.JSON(http.StatusOK, serializers.NewTagViews(tags))
}

// resolveTag looks a tag up by numeric id or by title.
func (h *TagHandler) resolveTag(key string) (*models.Tag, error) {
	if id, err := strconv.ParseUint(key, 10, 32); err == nil {
		return h.tagRepository.GetTagByID(uint(id))
	}
	return h.tagRepository.GetTagByTitle(key)
}

// RetrieveTag returns a tag by id or title.
func (h *TagHandler) RetrieveTag(c echo.Context) error {
	tag, err := h.resolveTag(c.Param("key"))
	if err != nil {
		return storageError(err, "Tag not found")
	}
	return c.JSON(http.StatusOK, serializers.NewTagView(tag))
}

// UpdateTag renames a tag.
func (h *TagHandler) UpdateTag(c echo.Context) error {
	action := models.ActionUpdate
	if c.Request().Method == http.MethodPatch {
		action = models.ActionPartialUpdate
	}
	if err := h.check(c, action); err != nil {
		return err
	}

	tag, err := h.resolveTag(c.Param("key"))
	if err != nil {
		return storageError(err, "Tag not found")
	}

	req, ok := serializers.RequestForTag(action).(*models.CreateTagRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	tag.Title = req.Title
	if err := h.tagRepository.UpdateTag(tag); err != nil {
		return storageError(err, "Tag not found")
	}
	return c.JSON(http.StatusOK, serializers.NewTagView(tag))
}

// DeleteTag removes a tag.
func (h *TagHandler) DeleteTag(c echo.Context) error {
	if err := h.check(c, models.ActionDestroy); err != nil {
		return err
	}
	tag, err := h.resolveTag(c.Param("key"))
	if err != nil {
		return storageError(err, "Tag not found")
	}
	if err := h.tagRepository.DeleteTag(tag.ID); err != nil {
		return storageError(err, "Tag not found")
	}
	return c.NoContent(http.StatusNoContent)
}
