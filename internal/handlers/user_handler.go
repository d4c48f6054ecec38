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
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles HTTP requests related to user accounts.
type UserHandler struct {
	userRepository repositories.UserRepository
	roleRepository repositories.RoleRepository
	gate           authz.Gate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		roleRepository: roleRepo,
		gate:           authz.NewGate(authz.SelfOrAdminOrReadOnly{}),
	}
}

// RegisterUserRoutes registers user-related routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("", h.CreateUser)
	g.GET("", h.ListUsers)
	g.GET("/me", h.Me)
	g.GET("/:key", h.RetrieveUser)
	g.PUT("/:key", h.UpdateUser)
	g.PATCH("/:key", h.UpdateUser)
	g.DELETE("/:key", h.DeleteUser)
}

func (h *UserHandler) input(c echo.Context, action models.Action) authz.Input {
	return authz.Input{
		Actor:  middleware.Actor(c),
		Method: c.Request().Method,
		Action: action,
	}
}

// CreateUser registers a new user with the seeded "user" role.
func (h *UserHandler) CreateUser(c echo.Context) error {
	in := h.input(c, models.ActionCreate)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForUser(in.Action).(*models.CreateUserRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	role, err := h.roleRepository.GetRoleByKind(models.RoleKindUser)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "default user role is not available")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashed),
		ProfileImage: models.DefaultProfileImage,
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return storageError(err, "User not found")
	}

	// Respond with the canonical read shape, never the creation contract.
	return c.JSON(http.StatusCreated, serializers.NewUserView(user))
}

// ListUsers returns users, honoring limit/skip.
func (h *UserHandler) ListUsers(c echo.Context) error {
	limit, skip := limitSkip(c)
	users, err := h.userRepository.GetUsers(limit, skip)
	if err != nil {
		return storageError(err, "User not found")
	}
	return c.JSON(http.StatusOK, serializers.NewUserViews(users))
}

// Me returns the requesting user.
func (h *UserHandler) Me(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, serializers.NewUserView(actor))
}

// resolveUser looks a user up by numeric id, email, or username, in that
// order of recognition.
func (h *UserHandler) resolveUser(key string) (*models.User, error) {
	if id, err := strconv.ParseUint(key, 10, 32); err == nil {
		return h.userRepository.GetUserByID(uint(id))
	}
	if validate.Var(key, "email") == nil {
		return h.userRepository.GetUserByEmail(key)
	}
	return h.userRepository.GetUserByUsername(key)
}

// RetrieveUser returns a user by id, email, or username.
func (h *UserHandler) RetrieveUser(c echo.Context) error {
	user, err := h.resolveUser(c.Param("key"))
	if err != nil {
		return storageError(err, "User not found")
	}
	return c.JSON(http.StatusOK, serializers.NewUserView(user))
}

// UpdateUser changes a user's account. Only the user themselves or an admin
// may write.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	action := models.ActionUpdate
	if c.Request().Method == http.MethodPatch {
		action = models.ActionPartialUpdate
	}
	in := h.input(c, action)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	user, err := h.resolveUser(c.Param("key"))
	if err != nil {
		return storageError(err, "User not found")
	}
	if d := h.gate.CheckObject(in, user); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForUser(action).(*models.UpdateUserRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		user.Password = string(hashed)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return storageError(err, "User not found")
	}
	return c.JSON(http.StatusOK, serializers.NewUserView(user))
}

// DeleteUser removes a user account.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	in := h.input(c, models.ActionDestroy)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	user, err := h.resolveUser(c.Param("key"))
	if err != nil {
		return storageError(err, "User not found")
	}
	if d := h.gate.CheckObject(in, user); !d.Allowed {
		return deny(in, d)
	}
	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		return storageError(err, "User not found")
	}
	return c.NoContent(http.StatusNoContent)
}
