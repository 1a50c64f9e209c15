package guard

import (
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/users"
)

// RoleSet is the set of roles allowed on a route. An empty set admits any authenticated role.
type RoleSet map[users.Role]struct{}

func Roles(roles ...users.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role users.Role) bool {
	_, ok := s[role]
	return ok
}

// Evaluate decides whether session may see a route restricted to required.
// A nil session means there is no valid session.
func Evaluate(session *sessions.Session, required RoleSet) Decision {
	if session == nil || !session.Complete() {
		return Decision{Kind: RedirectToLogin}
	}

	if len(required) > 0 && !required.Contains(session.Role) {
		if _, ok := RoleHome(session.Role); ok {
			return Decision{Kind: RedirectToRoleHome, Role: session.Role}
		}
		return Decision{Kind: RedirectToHome}
	}

	return Decision{Kind: Allow}
}

// Guard evaluates routes against the session held in a store. It only reads the store.
type Guard struct {
	sessions sessions.Repo
}

func New(repo sessions.Repo) *Guard {
	return &Guard{sessions: repo}
}

// Authorize evaluates the current session against the allowed roles.
// A store read failure is treated like an absent session.
func (g *Guard) Authorize(required ...users.Role) Decision {
	return g.AuthorizeSet(Roles(required...))
}

func (g *Guard) AuthorizeSet(required RoleSet) Decision {
	session, err := g.sessions.Get()
	if err != nil {
		return Evaluate(nil, required)
	}
	return Evaluate(session, required)
}
