// Package authz decides, per (actor, action, target object), whether a
// request may proceed. Every endpoint is guarded by one Gate: an ordered list
// of rules combined with AND semantics. Rules are checked in two phases so a
// request that fails on method or role alone is rejected before the target
// object is ever fetched.
package authz

import (
	"net/http"

	"github.com/askforum/backend/internal/models"
)

// Input describes the request under evaluation. A nil Actor means the request
// is anonymous. Fields carries the body fields present, for rules that gate
// individual fields.
type Input struct {
	Actor  *models.User
	Method string
	Action models.Action
	Fields map[string]bool
}

// Decision is a single rule's verdict. Reason is set on denial and surfaces
// in the error response.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowing decision.
func Allow() Decision { return Decision{Allowed: true} }

// Deny returns a denying decision with the given reason.
func Deny(reason string) Decision { return Decision{Reason: reason} }

// Rule is one composable permission predicate. Request runs before the target
// object is loaded; Object runs after. A rule with no opinion in a phase
// returns Allow for it.
type Rule interface {
	Request(in Input) Decision
	Object(in Input, obj any) Decision
}

// Gate evaluates an ordered rule list, short-circuiting on the first denial.
type Gate struct {
	rules []Rule
}

// NewGate builds a gate from rules, evaluated in order.
func NewGate(rules ...Rule) Gate {
	return Gate{rules: rules}
}

// CheckRequest runs the request phase of every rule.
func (g Gate) CheckRequest(in Input) Decision {
	for _, r := range g.rules {
		if d := r.Request(in); !d.Allowed {
			return d
		}
	}
	return Allow()
}

// CheckObject runs the object phase of every rule against the loaded target.
func (g Gate) CheckObject(in Input, obj any) Decision {
	for _, r := range g.rules {
		if d := r.Object(in, obj); !d.Allowed {
			return d
		}
	}
	return Allow()
}

// ReadOnly reports whether the method cannot mutate state.
func ReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Owned is implemented by entities with a single owning user.
type Owned interface {
	OwnerID() uint
}
