package auth

import "github.com/simre/results-server/internal/repository/models"

// Policy decides whether a session may create or delete schools and results.
type Policy interface {
	CanWrite(s Session) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(s Session) bool

func (f PolicyFunc) CanWrite(s Session) bool { return f(s) }

// AdminPolicy grants write access to admin logins and to an explicit list of user ids.
type AdminPolicy struct {
	ids map[string]struct{}
}

func NewAdminPolicy(userIDs ...string) *AdminPolicy {
	ids := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &AdminPolicy{ids: ids}
}

func (p *AdminPolicy) CanWrite(s Session) bool {
	if s.UserID == "" {
		return false
	}
	if s.Kind == models.UserKindAdmin {
		return true
	}
	_, ok := p.ids[s.UserID]
	return ok
}
