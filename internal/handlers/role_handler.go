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

// RoleHandler handles HTTP requests related to roles. Every operation is
// admin-only.
type RoleHandler struct {
	roleRepository repositories.RoleRepository
	gate           authz.Gate
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleRepo repositories.RoleRepository) *RoleHandler {
	return &RoleHandler{
		roleRepository: roleRepo,
		gate:           authz.NewGate(authz.AdminOnly{}),
	}
}

// RegisterRoleRoutes registers role-related routes.
func (h *RoleHandler) RegisterRoleRoutes(g *echo.Group) {
	g.POST("", h.CreateRole)
	g.GET("", h.ListRoles)
	g.GET("/:id", h.RetrieveRole)
	g.PUT("/:id", h.UpdateRole)
	g.PATCH("/:id", h.UpdateRole)
	g.DELETE("/:id", h.DeleteRole)
}

func (h *RoleHandler) check(c echo.Context, action models.Action) *echo.HTTPError {
	in := authz.Input{Actor: middleware.Actor(c), Method: c.Request().Method, Action: action}
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	return nil
}

// CreateRole creates a role. Kind defaults to "user" when omitted.
func (h *RoleHandler) CreateRole(c echo.Context) error {
	if err := h.check(c, models.ActionCreate); err != nil {
		return err
	}

	req, ok := serializers.RequestForRole(models.ActionCreate).(*models.CreateRoleRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}
	if req.Kind == "" {
		req.Kind = models.RoleKindUser
	}

	role := &models.Role{Title: req.Title, Kind: req.Kind}
	if err := h.roleRepository.CreateRole(role); err != nil {
		return storageError(err, "Role not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewRoleView(*role))
}

// ListRoles returns all roles.
func (h *RoleHandler) ListRoles(c echo.Context) error {
	if err := h.check(c, models.ActionList); err != nil {
		return err
	}
	roles, err := h.roleRepository.GetRoles()
	if err != nil {
		return storageError(err, "Role not found")
	}
	return c.JSON(http.StatusOK, serializers.NewRoleViews(roles))
}

// RetrieveRole returns a role by ID.
func (h *RoleHandler) RetrieveRole(c echo.Context) error {
	if err := h.check(c, models.ActionRetrieve); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, rerr := h.roleRepository.GetRoleByID(id)
	if rerr != nil {
		return storageError(rerr, "Role not found")
	}
	return c.JSON(http.StatusOK, serializers.NewRoleView(*role))
}

// UpdateRole changes a role's title or kind.
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	action := models.ActionUpdate
	if c.Request().Method == http.MethodPatch {
		action = models.ActionPartialUpdate
	}
	if err := h.check(c, action); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, rerr := h.roleRepository.GetRoleByID(id)
	if rerr != nil {
		return storageError(rerr, "Role not found")
	}

	req, ok := serializers.RequestForRole(action).(*models.CreateRoleRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	role.Title = req.Title
	if req.Kind != "" {
		role.Kind = req.Kind
	}
	if err := h.roleRepository.UpdateRole(role); err != nil {
		return storageError(err, "Role not found")
	}
	return c.JSON(http.StatusOK, serializers.NewRoleView(*role))
}

// DeleteRole removes a role.
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	if err := h.check(c, models.ActionDestroy); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.roleRepository.DeleteRole(id); err != nil {
		return storageError(err, "Role not found")
	}
	return c.NoContent(http.StatusNoContent)
}
