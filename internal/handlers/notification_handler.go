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

// NotificationHandler handles HTTP requests related to notifications. Admins
// manage them freely, recipients may delete their own, and the per-user
// listing is open to any caller.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	gate                   authz.Gate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		userRepository:         userRepo,
		gate:                   authz.NewGate(authz.NotificationAccess{}),
	}
}

// RegisterNotificationRoutes registers notification-related routes.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("", h.CreateNotification)
	g.GET("", h.ListNotifications)
	g.GET("/:user_id", h.RetrieveUserNotifications)
	g.PUT("/:id", h.UpdateNotification)
	g.PATCH("/:id", h.UpdateNotification)
	g.DELETE("/:id", h.DeleteNotification)
}

func (h *NotificationHandler) input(c echo.Context, action models.Action) authz.Input {
	return authz.Input{Actor: middleware.Actor(c), Method: c.Request().Method, Action: action}
}

// CreateNotification creates a notification directly (admin path; the common
// path is the comment side-effect). A dangling user or question reference is
// reported as not found.
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	in := h.input(c, models.ActionCreate)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}

	req, ok := serializers.RequestForNotification(in.Action).(*models.CreateNotificationRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	notification := &models.Notification{
		Title:      req.Title,
		UserID:     req.UserID,
		QuestionID: req.QuestionID,
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		return storageError(err, "Related user or question not found")
	}
	return c.JSON(http.StatusCreated, serializers.NewNotificationView(notification))
}

// ListNotifications returns all notifications (admin only via the gate).
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	in := h.input(c, models.ActionList)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	limit, skip := limitSkip(c)
	notifications, err := h.notificationRepository.GetNotifications(limit, skip)
	if err != nil {
		return storageError(err, "Notification not found")
	}
	return c.JSON(http.StatusOK, serializers.NewNotificationViews(notifications))
}

// RetrieveUserNotifications returns all notifications addressed to the given
// user. Deliberately open to any caller.
func (h *NotificationHandler) RetrieveUserNotifications(c echo.Context) error {
	in := h.input(c, models.ActionRetrieve)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	if _, uerr := h.userRepository.GetUserByID(userID); uerr != nil {
		return storageError(uerr, "User not found")
	}
	notifications, nerr := h.notificationRepository.GetNotificationsByRecipient(userID)
	if nerr != nil {
		return storageError(nerr, "Notification not found")
	}
	return c.JSON(http.StatusOK, serializers.NewNotificationViews(notifications))
}

// UpdateNotification rewrites a notification (admin only via the gate).
func (h *NotificationHandler) UpdateNotification(c echo.Context) error {
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
	notification, nerr := h.notificationRepository.GetNotificationByID(id)
	if nerr != nil {
		return storageError(nerr, "Notification not found")
	}
	if d := h.gate.CheckObject(in, notification); !d.Allowed {
		return deny(in, d)
	}

	// Updates bind the creation shape; the contract routes them there.
	req, ok := serializers.RequestForNotification(action).(*models.CreateNotificationRequest)
	if !ok {
		return errNoContract
	}
	if err := bindRequest(c, req); err != nil {
		return err
	}

	notification.Title = req.Title
	notification.UserID = req.UserID
	notification.QuestionID = req.QuestionID
	if err := h.notificationRepository.UpdateNotification(notification); err != nil {
		return storageError(err, "Related user or question not found")
	}
	return c.JSON(http.StatusOK, serializers.NewNotificationView(notification))
}

// DeleteNotification removes a notification. Recipients may delete their own;
// admins may delete any.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	in := h.input(c, models.ActionDestroy)
	if d := h.gate.CheckRequest(in); !d.Allowed {
		return deny(in, d)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	notification, nerr := h.notificationRepository.GetNotificationByID(id)
	if nerr != nil {
		return storageError(nerr, "Notification not found")
	}
	if d := h.gate.CheckObject(in, notification); !d.Allowed {
		return deny(in, d)
	}
	if err := h.notificationRepository.DeleteNotification(id); err != nil {
		return storageError(err, "Notification not found")
	}
	return c.NoContent(http.StatusNoContent)
}
