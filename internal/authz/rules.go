package authz

import (
	"net/http"

	"github.com/askforum/backend/internal/models"
)

const (
	reasonAuthRequired = "authentication required"
	reasonAdminOnly    = "admin privileges required"
)

// baseRule allows everything; concrete rules embed it and override the phase
// they care about.
type baseRule struct{}

func (baseRule) Request(Input) Decision     { return Allow() }
func (baseRule) Object(Input, any) Decision { return Allow() }

// AuthenticatedOrReadOnly denies anonymous writes. The view-counter action is
// exempt: incrementing a view count is not considered sensitive and must work
// for anonymous readers.
type AuthenticatedOrReadOnly struct{ baseRule }

func (AuthenticatedOrReadOnly) Request(in Input) Decision {
	if ReadOnly(in.Method) || in.Action == models.ActionUpdateViews || in.Actor != nil {
		return Allow()
	}
	return Deny(reasonAuthRequired)
}

// AdminOnly restricts every method to admins.
type AdminOnly struct{ baseRule }

func (AdminOnly) Request(in Input) Decision {
	if in.Actor.IsAdmin() {
		return Allow()
	}
	return Deny(reasonAdminOnly)
}

func (r AdminOnly) Object(in Input, _ any) Decision { return r.Request(in) }

// AdminOrReadOnly allows safe methods for everyone and writes for admins.
type AdminOrReadOnly struct{ baseRule }

func (AdminOrReadOnly) Request(in Input) Decision {
	if ReadOnly(in.Method) || in.Actor.IsAdmin() {
		return Allow()
	}
	return Deny(reasonAdminOnly)
}

func (r AdminOrReadOnly) Object(in Input, _ any) Decision { return r.Request(in) }

// SelfOrAdminOrReadOnly lets users change only their own account. Creation
// (registration) is open, so the request phase has no opinion.
type SelfOrAdminOrReadOnly struct{ baseRule }

func (SelfOrAdminOrReadOnly) Object(in Input, obj any) Decision {
	if ReadOnly(in.Method) || in.Actor.IsAdmin() {
		return Allow()
	}
	target, ok := obj.(*models.User)
	if !ok {
		return Deny("not a user object")
	}
	if in.Actor != nil && in.Actor.ID == target.ID {
		return Allow()
	}
	return Deny("you can only change your own account")
}

// NotificationAccess guards the notification endpoints: admins may do
// anything, recipients may delete their own notifications, and the detail
// retrieve (a user's notification listing) is open to any caller. Everything
// else is admin-only.
type NotificationAccess struct{ baseRule }

func (NotificationAccess) Request(in Input) Decision {
	if in.Action == models.ActionRetrieve || in.Method == http.MethodDelete || in.Actor.IsAdmin() {
		return Allow()
	}
	return Deny(reasonAdminOnly)
}

func (NotificationAccess) Object(in Input, obj any) Decision {
	if in.Actor.IsAdmin() {
		return Allow()
	}
	n, ok := obj.(*models.Notification)
	if !ok {
		return Deny("not a notification object")
	}
	if in.Method == http.MethodDelete && in.Actor != nil && in.Actor.ID == n.UserID {
		return Allow()
	}
	return Deny("only the recipient may delete a notification")
}

// OwnerOrAdminOrReadOnly allows safe methods for everyone and writes only for
// the object's author or an admin. The view-counter action bypasses the check
// entirely.
type OwnerOrAdminOrReadOnly struct{ baseRule }

func (OwnerOrAdminOrReadOnly) Object(in Input, obj any) Decision {
	if ReadOnly(in.Method) || in.Action == models.ActionUpdateViews || in.Actor.IsAdmin() {
		return Allow()
	}
	// A write scoped to per-field gated attributes is arbitrated by
	// CommentFieldAccess: the question author may set is_answer on a comment
	// they do not own. A write touching any other field falls back to the
	// ownership check below.
	if len(in.Fields) > 0 && fieldGatedWrite(in.Fields) {
		return Allow()
	}
	owned, ok := obj.(Owned)
	if !ok {
		return Deny("object has no owner")
	}
	if in.Actor != nil && in.Actor.ID == owned.OwnerID() {
		return Allow()
	}
	return Deny("you are not the author of this object")
}

// commentFields are the per-field gated comment attributes. CommentFieldAccess
// arbitrates them; OwnerOrAdminOrReadOnly defers only writes scoped to them.
var commentFields = map[string]bool{"content": true, "is_answer": true}

func fieldGatedWrite(fields map[string]bool) bool {
	for f := range fields {
		if !commentFields[f] {
			return false
		}
	}
	return true
}

// CommentFieldAccess gates individual comment fields: changing content is the
// commenter's privilege, marking an accepted answer is the question author's.
// Admins bypass both.
type CommentFieldAccess struct{ baseRule }

func (CommentFieldAccess) Object(in Input, obj any) Decision {
	if ReadOnly(in.Method) || in.Actor.IsAdmin() {
		return Allow()
	}
	comment, ok := obj.(*models.Comment)
	if !ok {
		return Allow()
	}
	if in.Actor == nil {
		return Deny(reasonAuthRequired)
	}
	if in.Fields["content"] && in.Actor.ID != comment.AuthorID {
		return Deny("only the comment author may change its content")
	}
	if in.Fields["is_answer"] && in.Actor.ID != comment.Question.AuthorID {
		return Deny("only the question author may mark an answer")
	}
	return Allow()
}

// RatingOrAdminOrReadOnly guards articles: the rating toggle is open to any
// caller the authentication layer admits, all other writes are admin-only.
type RatingOrAdminOrReadOnly struct{ baseRule }

func (RatingOrAdminOrReadOnly) Request(in Input) Decision {
	if in.Action == models.ActionUpdateRating || ReadOnly(in.Method) || in.Actor.IsAdmin() {
		return Allow()
	}
	return Deny(reasonAdminOnly)
}

func (r RatingOrAdminOrReadOnly) Object(in Input, _ any) Decision { return r.Request(in) }
