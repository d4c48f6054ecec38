package models

// Action is the closed set of logical operations a request can perform on a
// resource. Authorization rules and contract selection both key off it.
type Action string

const (
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionRetrieve      Action = "retrieve"
	ActionDestroy       Action = "destroy"
	ActionList          Action = "list"
	ActionMe            Action = "me"
	ActionUpdateViews   Action = "update_views"
	ActionByUser        Action = "by_user"
	ActionUpdateRating  Action = "update_rating"
)

// IsWrite reports whether the action mutates state.
func (a Action) IsWrite() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy, ActionUpdateViews, ActionUpdateRating:
		return true
	}
	return false
}
