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

// ArticleHandler handles HTTP requests related to news articles.
type ArticleHandler struct {
	articleRepository repositories.ArticleRepository
	gate              authz.Gate
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleRepo repositories.ArticleRepository) *ArticleHandler {
	return &ArticleHandler{
		articleRepository: articleRepo,
		gate: authz.NewGate(
			authz.AuthenticatedOrReadOnly{},
			authz.RatingOrAdminOrReadOnly{},
		),
	}
}

// RegisterArticleRoutes registers article-related routes. The rating action
// is registered last so the fixed CRUD paths keep precedence.
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group) {
	g.POST("", h.CreateArticle)
	g.GET("", h.ListArticles)
	g.GET("/:id", h.RetrieveArticle)
	g.PUT("/:id", h.UpdateArticle)
	g.DELETE("/:id", h.DeleteArticle)
	g.PATCH("/:id/:action", h.UpdateRating)
}

func (h *ArticleHandler) input(c echo.Context, action models.Action) authz.Input {
	return authz.Input{Actor: middleware.Actor(c), Method: c.Request().Method, Action: action}
}

// CreateArticle creates an article (admin only via the gate).
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	in := h.input(c, models.ActionCreate)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForArticle(in.Action).(*models.CreateArticleRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	article := &models.Article{Title: req.Title, Content: req.Content}
	if err := h.articleRepository.CreateArticle(article); err != nil {
		return storageError(err, "Article not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewArticleView(article))
}

// ListArticles returns articles newest-first, honoring limit/skip.
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	limit, skip := limitSkip(c)
	articles, err := h.articleRepository.GetArticles(limit, skip)
	if err != nil {
		return storageError(err, "Article not found")
	}
	return c.JSON(http.StatusOK, serializers.NewArticleViews(articles))
}

// RetrieveArticle returns an article by ID.
func (h *ArticleHandler) RetrieveArticle(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	article, aerr := h.articleRepository.GetArticleByID(id)
	if aerr != nil {
		return storageError(aerr, "Article not found")
	}
	return c.JSON(http.StatusOK, serializers.NewArticleView(article))
}

// UpdateArticle changes an article's title or content (admin only via the
// gate).
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	in := h.input(c, models.ActionUpdate)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	article, aerr := h.articleRepository.GetArticleByID(id)
	if aerr != nil {
		return storageError(aerr, "Article not found")
	}

	// Updates bind the creation shape; the contract routes them there.
	req, ok := serializers.RequestForArticle(in.Action).(*models.CreateArticleRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	article.Title = req.Title
	article.Content = req.Content
	if err := h.articleRepository.UpdateArticle(article); err != nil {
		return storageError(err, "Article not found")
	}
	return c.JSON(http.StatusOK, serializers.NewArticleView(article))
}

// DeleteArticle removes an article (admin only via the gate).
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	in := h.input(c, models.ActionDestroy)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.articleRepository.DeleteArticle(id); err != nil {
		return storageError(err, "Article not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRating toggles the requesting user's reaction on an article.
// Repeating an action removes the reaction; switching actions moves the user
// to the other set, never both.
func (h *ArticleHandler) UpdateRating(c echo.Context) error {
	in := h.input(c, models.ActionUpdateRating)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	action := models.RatingAction(c.Param("action"))
	if !action.Valid() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown rating action")
	}
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no user in request context")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	article, aerr := h.articleRepository.GetArticleByID(id)
	if aerr != nil {
		return storageError(aerr, "Article not found")
	}

	active, herr := h.articleRepository.HasReaction(article.ID, actor.ID, action)
	if herr != nil {
		return storageError(herr, "Article not found")
	}
	if active {
		if err := h.articleRepository.RemoveReaction(article, actor, action); err != nil {
			return storageError(err, "Article not found")
		}
	} else {
		if err := h.articleRepository.AddReaction(article, actor, action); err != nil {
			return storageError(err, "Article not found")
		}
		opposite, oerr := h.articleRepository.HasReaction(article.ID, actor.ID, action.Opposite())
		if oerr != nil {
			return storageError(oerr, "Article not found")
		}
		if opposite {
			if err := h.articleRepository.RemoveReaction(article, actor, action.Opposite()); err != nil {
				return storageError(err, "Article not found")
			}
		}
	}

	// Re-read so the response reflects the membership just written.
	article, aerr = h.articleRepository.GetArticleByID(id)
	if aerr != nil {
		return storageError(aerr, "Article not found")
	}
	return c.JSON(http.StatusOK, serializers.NewArticleView(article))
}
