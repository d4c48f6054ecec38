package serializers_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/askforum/backend/internal/models"
	"github.com/askforum/backend/internal/serializers"
)

func TestContractSelection(t *testing.T) {
	cases := []struct {
		name   string
		pick   func(models.Action) serializers.Contract
		action models.Action
		want   serializers.Contract
	}{
		{"user create", serializers.ForUser, models.ActionCreate, serializers.ContractCreate},
		{"user partial update", serializers.ForUser, models.ActionPartialUpdate, serializers.ContractChange},
		{"user me", serializers.ForUser, models.ActionMe, serializers.ContractRead},
		{"question view counter", serializers.ForQuestion, models.ActionUpdateViews, serializers.ContractRead},
		{"question by author", serializers.ForQuestion, models.ActionByUser, serializers.ContractRead},
		{"question update", serializers.ForQuestion, models.ActionUpdate, serializers.ContractChange},
		{"comment destroy", serializers.ForComment, models.ActionDestroy, serializers.ContractRead},
		{"tag create", serializers.ForTag, models.ActionCreate, serializers.ContractCreate},
		{"notification update reuses create", serializers.ForNotification, models.ActionUpdate, serializers.ContractCreate},
		{"article rating", serializers.ForArticle, models.ActionUpdateRating, serializers.ContractRead},
		{"article update reuses create", serializers.ForArticle, models.ActionUpdate, serializers.ContractCreate},
	}
	for _, c := range cases {
		if got := c.pick(c.action); got != c.want {
			t.Errorf("%s: got contract %d, want %d", c.name, got, c.want)
		}
	}
}

func TestContractFallbackIsRead(t *testing.T) {
	// An action a resource never handles must land on the read shape.
	unknown := models.Action("bulk_export")
	picks := map[string]func(models.Action) serializers.Contract{
		"role":         serializers.ForRole,
		"user":         serializers.ForUser,
		"question":     serializers.ForQuestion,
		"comment":      serializers.ForComment,
		"tag":          serializers.ForTag,
		"notification": serializers.ForNotification,
		"article":      serializers.ForArticle,
	}
	for name, pick := range picks {
		if got := pick(unknown); got != serializers.ContractRead {
			t.Errorf("%s: unknown action got contract %d, want ContractRead", name, got)
		}
	}
}

func TestRequestShapeSelection(t *testing.T) {
	cases := []struct {
		name string
		got  any
		want any
	}{
		{"user create", serializers.RequestForUser(models.ActionCreate), &models.CreateUserRequest{}},
		{"user partial update", serializers.RequestForUser(models.ActionPartialUpdate), &models.UpdateUserRequest{}},
		{"role update shares the write shape", serializers.RequestForRole(models.ActionUpdate), &models.CreateRoleRequest{}},
		{"question create", serializers.RequestForQuestion(models.ActionCreate), &models.CreateQuestionRequest{}},
		{"question update", serializers.RequestForQuestion(models.ActionUpdate), &models.UpdateQuestionRequest{}},
		{"comment partial update", serializers.RequestForComment(models.ActionPartialUpdate), &models.UpdateCommentRequest{}},
		{"tag update shares the write shape", serializers.RequestForTag(models.ActionUpdate), &models.CreateTagRequest{}},
		{"notification update reuses create", serializers.RequestForNotification(models.ActionUpdate), &models.CreateNotificationRequest{}},
		{"article update reuses create", serializers.RequestForArticle(models.ActionPartialUpdate), &models.CreateArticleRequest{}},
	}
	for _, c := range cases {
		if reflect.TypeOf(c.got) != reflect.TypeOf(c.want) {
			t.Errorf("%s: got %T, want %T", c.name, c.got, c.want)
		}
	}

	// Read actions carry no input shape.
	reads := []any{
		serializers.RequestForUser(models.ActionList),
		serializers.RequestForQuestion(models.ActionUpdateViews),
		serializers.RequestForArticle(models.ActionUpdateRating),
		serializers.RequestForNotification(models.ActionRetrieve),
	}
	for i, got := range reads {
		if got != nil {
			t.Errorf("read action %d: got %T, want nil", i, got)
		}
	}
}

func TestUserViewOmitsPassword(t *testing.T) {
	view := serializers.NewUserView(&models.User{
		ID:       2,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$10$secrethash",
		Role:     models.Role{ID: 1, Title: "User", Kind: models.RoleKindUser},
	})

	rt := reflect.TypeOf(view)
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Name == "Password" {
			t.Fatal("user view must not carry a password field")
		}
	}
	if view.Username != "alice" || view.Role.Kind != models.RoleKindUser {
		t.Errorf("unexpected projection: %+v", view)
	}
}

func TestQuestionViewProjectsTags(t *testing.T) {
	now := time.Now()
	view := serializers.NewQuestionView(&models.Question{
		ID:          5,
		Title:       "How do goroutines leak?",
		Views:       12,
		AuthorID:    2,
		DateCreated: now,
		Tags: []models.Tag{
			{ID: 1, Title: "go"},
			{ID: 2, Title: "concurrency"},
		},
	})

	want := []serializers.TagRef{{ID: 1, Title: "go"}, {ID: 2, Title: "concurrency"}}
	if !reflect.DeepEqual(view.Tags, want) {
		t.Errorf("got tags %+v, want %+v", view.Tags, want)
	}
	if view.Views != 12 || view.AuthorID != 2 {
		t.Errorf("unexpected projection: %+v", view)
	}
}

func TestArticleViewProjectsReactionIDs(t *testing.T) {
	view := serializers.NewArticleView(&models.Article{
		ID:       3,
		Title:    "Release notes",
		Likes:    []models.User{{ID: 2}, {ID: 7}},
		Dislikes: []models.User{{ID: 4}},
	})

	if !reflect.DeepEqual(view.Likes, []uint{2, 7}) {
		t.Errorf("got likes %v, want [2 7]", view.Likes)
	}
	if !reflect.DeepEqual(view.Dislikes, []uint{4}) {
		t.Errorf("got dislikes %v, want [4]", view.Dislikes)
	}
}

func TestEmptyListsProjectAsEmptySlices(t *testing.T) {
	// JSON output should be [] rather than null for empty collections.
	if serializers.NewQuestionViews(nil) == nil {
		t.Error("question list projection must not be nil")
	}
	if serializers.NewArticleView(&models.Article{}).Likes == nil {
		t.Error("likes projection must not be nil")
	}
	if serializers.NewQuestionView(&models.Question{}).Tags == nil {
		t.Error("tags projection must not be nil")
	}
}
