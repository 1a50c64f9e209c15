package guard

import (
	"fmt"

	"github.com/jrsteele09/recyclemate/users"
)

type DecisionKind int

const (
	Allow DecisionKind = iota
	RedirectToLogin
	RedirectToRoleHome
	RedirectToHome
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToRoleHome:
		return "redirect-to-role-home"
	case RedirectToHome:
		return "redirect-to-home"
	}
	return fmt.Sprintf("DecisionKind(%d)", int(k))
}

// Decision is the outcome of evaluating a protected route. Role is only set for RedirectToRoleHome.
type Decision struct {
	Kind DecisionKind
	Role users.Role
}

func (d Decision) Allowed() bool {
	return d.Kind == Allow
}

// Target is the path to redirect to, or "" when the decision is Allow.
func (d Decision) Target() string {
	switch d.Kind {
	case RedirectToLogin:
		return RouteLogin
	case RedirectToRoleHome:
		if route, ok := RoleHome(d.Role); ok {
			return route
		}
		return RouteHome
	case RedirectToHome:
		return RouteHome
	}
	return ""
}

func (d Decision) String() string {
	if d.Kind == RedirectToRoleHome {
		return fmt.Sprintf("%s(%s)", d.Kind, d.Role)
	}
	return d.Kind.String()
}
