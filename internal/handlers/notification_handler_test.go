package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/askforum/backend/internal/models"
)

func newNotificationFixture() (*NotificationHandler, *fakeNotificationRepo) {
	repo := newFakeNotificationRepo(
		&models.Notification{ID: 1, Title: "User bob commented your question: \"Q\".", UserID: 2, QuestionID: 1},
		&models.Notification{ID: 2, Title: "User alice commented your question: \"R\".", UserID: 3, QuestionID: 2},
	)
	users := newFakeUserRepo(testAdmin(), testUser(2, "alice"), testUser(3, "bob"))
	return NewNotificationHandler(repo, users), repo
}

func TestCreateNotificationAdminOnly(t *testing.T) {
	body := models.CreateNotificationRequest{Title: "manual", UserID: 2, QuestionID: 1}

	cases := []struct {
		name  string
		actor *models.User
		want  int
	}{
		{"admin", testAdmin(), http.StatusCreated},
		{"plain user", testUser(2, "alice"), http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		h, _ := newNotificationFixture()
		c, rec := request(t, http.MethodPost, "/api/notifications", body, tc.actor)
		if code := httpCode(t, h.CreateNotification(c), rec); code != tc.want {
			t.Errorf("%s: got status %d, want %d", tc.name, code, tc.want)
		}
	}
}

func TestListNotificationsAdminOnly(t *testing.T) {
	h, _ := newNotificationFixture()
	c, rec := request(t, http.MethodGet, "/api/notifications", nil, testAdmin())
	if code := httpCode(t, h.ListNotifications(c), rec); code != http.StatusOK {
		t.Errorf("admin: got status %d, want 200", code)
	}

	c, rec = request(t, http.MethodGet, "/api/notifications", nil, testUser(2, "alice"))
	if code := httpCode(t, h.ListNotifications(c), rec); code != http.StatusForbidden {
		t.Errorf("plain user: got status %d, want 403", code)
	}
}

func TestRetrieveUserNotifications(t *testing.T) {
	h, _ := newNotificationFixture()

	// Open to any caller, including anonymous.
	c, rec := request(t, http.MethodGet, "/api/notifications/2", nil, nil, "user_id", "2")
	if code := httpCode(t, h.RetrieveUserNotifications(c), rec); code != http.StatusOK {
		t.Fatalf("got status %d, want 200", code)
	}
	if strings.Count(rec.Body.String(), `"user_id":2`) != 1 || strings.Contains(rec.Body.String(), `"user_id":3`) {
		t.Errorf("response should hold only user 2's notifications: %s", rec.Body.String())
	}

	c, rec = request(t, http.MethodGet, "/api/notifications/99", nil, nil, "user_id", "99")
	if code := httpCode(t, h.RetrieveUserNotifications(c), rec); code != http.StatusNotFound {
		t.Errorf("unknown user: got status %d, want 404", code)
	}
}

func TestDeleteNotificationRecipientOrAdmin(t *testing.T) {
	cases := []struct {
		name  string
		actor *models.User
		want  int
	}{
		{"recipient", testUser(2, "alice"), http.StatusNoContent},
		{"admin", testAdmin(), http.StatusNoContent},
		{"stranger", testUser(3, "bob"), http.StatusForbidden},
	}
	for _, tc := range cases {
		h, repo := newNotificationFixture()
		c, rec := request(t, http.MethodDelete, "/api/notifications/1", nil, tc.actor, "id", "1")
		code := httpCode(t, h.DeleteNotification(c), rec)
		if code != tc.want {
			t.Errorf("%s: got status %d, want %d", tc.name, code, tc.want)
			continue
		}
		_, err := repo.GetNotificationByID(1)
		if tc.want == http.StatusNoContent && err == nil {
			t.Errorf("%s: notification still present", tc.name)
		}
	}
}

func TestUpdateNotificationAdminOnly(t *testing.T) {
	body := models.CreateNotificationRequest{Title: "rewritten", UserID: 2, QuestionID: 1}

	h, repo := newNotificationFixture()
	c, rec := request(t, http.MethodPut, "/api/notifications/1", body, testAdmin(), "id", "1")
	if code := httpCode(t, h.UpdateNotification(c), rec); code != http.StatusOK {
		t.Fatalf("admin: got status %d, want 200", code)
	}
	stored, _ := repo.GetNotificationByID(1)
	if stored.Title != "rewritten" {
		t.Error("title not updated")
	}

	h, _ = newNotificationFixture()
	c, rec = request(t, http.MethodPut, "/api/notifications/1", body, testUser(2, "alice"), "id", "1")
	if code := httpCode(t, h.UpdateNotification(c), rec); code != http.StatusForbidden {
		t.Errorf("recipient: got status %d, want 403", code)
	}
}
