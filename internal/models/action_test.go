package models

import "testing"

func TestActionIsWrite(t *testing.T) {
	writes := []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy, ActionUpdateViews, ActionUpdateRating}
	for _, a := range writes {
		if !a.IsWrite() {
			t.Errorf("%s should be a write", a)
		}
	}
	reads := []Action{ActionRetrieve, ActionList, ActionMe, ActionByUser}
	for _, a := range reads {
		if a.IsWrite() {
			t.Errorf("%s should not be a write", a)
		}
	}
}

func TestRatingAction(t *testing.T) {
	if !RatingLikes.Valid() || !RatingDislikes.Valid() {
		t.Error("both reaction sets must be valid")
	}
	if RatingAction("upvotes").Valid() {
		t.Error("unknown reaction set must be invalid")
	}
	if RatingLikes.Opposite() != RatingDislikes || RatingDislikes.Opposite() != RatingLikes {
		t.Error("Opposite must swap the two sets")
	}
}

func TestUpdateCommentRequestFields(t *testing.T) {
	content := "edited"
	answer := true

	cases := []struct {
		name string
		req  UpdateCommentRequest
		want map[string]bool
	}{
		{"empty body", UpdateCommentRequest{}, map[string]bool{}},
		{"content only", UpdateCommentRequest{Content: &content}, map[string]bool{"content": true}},
		{"is_answer only", UpdateCommentRequest{IsAnswer: &answer}, map[string]bool{"is_answer": true}},
		{"both", UpdateCommentRequest{Content: &content, IsAnswer: &answer}, map[string]bool{"content": true, "is_answer": true}},
	}
	for _, c := range cases {
		got := c.req.Fields()
		if len(got) != len(c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
			continue
		}
		for k := range c.want {
			if !got[k] {
				t.Errorf("%s: missing field %q", c.name, k)
			}
		}
	}
}
