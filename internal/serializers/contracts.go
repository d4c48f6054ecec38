// Package serializers maps each (resource, action) pair to the data-shape
// contract used to validate input or project output, and holds the output
// views themselves. Contract selection is a closed dispatch over the action
// enum: unknown or read-style actions fall back explicitly to the resource's
// canonical read shape, and create/update responses are always re-projected
// through that read shape. Handlers obtain their bind shapes through the
// RequestFor functions, so every write body is validated against the shape
// the contract names.
package serializers

import "github.com/askforum/backend/internal/models"

// Contract identifies which shape applies to a resource action.
type Contract int

const (
	// ContractRead is the canonical output projection for the resource.
	ContractRead Contract = iota
	// ContractCreate is the input shape validating creation.
	ContractCreate
	// ContractChange is the input shape validating updates.
	ContractChange
)

// ForRole selects the role contract for an action.
func ForRole(a models.Action) Contract {
	switch a {
	case models.ActionCreate:
		return ContractCreate
	case models.ActionUpdate, models.ActionPartialUpdate:
		return ContractChange
	default:
		return ContractRead
	}
}

// ForUser selects the user contract for an action.
func ForUser(a models.Action) Contract {
	switch a {
	case models.ActionCreate:
		return ContractCreate
	case models.ActionUpdate, models.ActionPartialUpdate:
		return ContractChange
	case models.ActionRetrieve, models.ActionList, models.ActionMe:
		return ContractRead
	default:
		return ContractRead
	}
}

// ForQuestion selects the question contract for an action. The custom
// view-counter and per-author listing actions use the read shape.
func ForQuestion(a models.Action) Contract {
	switch a {
	case models.ActionCreate:
		return ContractCreate
	case models.ActionUpdate, models.ActionPartialUpdate:
		return ContractChange
	case models.ActionRetrieve, models.ActionList, models.ActionUpdateViews, models.ActionByUser:
		return ContractRead
	default:
		return ContractRead
	}
}

// ForComment selects the comment contract for an action.
func ForComment(a models.Action) Contract {
	switch a {
	case models.ActionCreate:
		return ContractCreate
	case models.ActionUpdate, models.ActionPartialUpdate:
		return ContractChange
	default:
		return ContractRead
	}
}

// ForTag selects the tag contract for an action.
func ForTag(a models.Action) Contract {
	switch a {
	case models.ActionCreate:
		return ContractCreate
	case models.ActionUpdate, models.ActionPartialUpdate:
		return ContractChange
	default:
		return ContractRead
	}
}

// ForNotification selects the notification contract for an action. Updates
// reuse the creation shape; there is no separate change shape.
func ForNotification(a models.Action) Contract {
	switch a {
	case models.ActionCreate, models.ActionUpdate, models.ActionPartialUpdate:
		return ContractCreate
	default:
		return ContractRead
	}
}

// ForArticle selects the article contract for an action. The rating toggle
// responds with the read shape.
func ForArticle(a models.Action) Contract {
	switch a {
	case models.ActionCreate, models.ActionUpdate, models.ActionPartialUpdate:
		return ContractCreate
	case models.ActionRetrieve, models.ActionList, models.ActionUpdateRating:
		return ContractRead
	default:
		return ContractRead
	}
}

// RequestForRole allocates the input shape the role contract names for an
// action, or nil for read actions. Handlers bind request bodies into the
// shape returned here, so the contract selection is what decides which DTO
// validates a write.
func RequestForRole(a models.Action) any {
	switch ForRole(a) {
	case ContractCreate, ContractChange:
		// One write shape covers both contracts.
		return &models.CreateRoleRequest{}
	default:
		return nil
	}
}

// RequestForUser allocates the input shape the user contract names.
func RequestForUser(a models.Action) any {
	switch ForUser(a) {
	case ContractCreate:
		return &models.CreateUserRequest{}
	case ContractChange:
		return &models.UpdateUserRequest{}
	default:
		return nil
	}
}

// RequestForQuestion allocates the input shape the question contract names.
func RequestForQuestion(a models.Action) any {
	switch ForQuestion(a) {
	case ContractCreate:
		return &models.CreateQuestionRequest{}
	case ContractChange:
		return &models.UpdateQuestionRequest{}
	default:
		return nil
	}
}

// RequestForComment allocates the input shape the comment contract names.
func RequestForComment(a models.Action) any {
	switch ForComment(a) {
	case ContractCreate:
		return &models.CreateCommentRequest{}
	case ContractChange:
		return &models.UpdateCommentRequest{}
	default:
		return nil
	}
}

// RequestForTag allocates the input shape the tag contract names.
func RequestForTag(a models.Action) any {
	switch ForTag(a) {
	case ContractCreate, ContractChange:
		return &models.CreateTagRequest{}
	default:
		return nil
	}
}

// RequestForNotification allocates the input shape the notification contract
// names. Updates land on the creation shape because ForNotification routes
// them there.
func RequestForNotification(a models.Action) any {
	switch ForNotification(a) {
	case ContractCreate:
		return &models.CreateNotificationRequest{}
	default:
		return nil
	}
}

// RequestForArticle allocates the input shape the article contract names.
func RequestForArticle(a models.Action) any {
	switch ForArticle(a) {
	case ContractCreate:
		return &models.CreateArticleRequest{}
	default:
		return nil
	}
}
