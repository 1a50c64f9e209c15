package guard

import (
	"strings"

	"github.com/jrsteele09/recyclemate/users"
)

// Page names the view rendered for a route
type Page string

const (
	PageHome               Page = "home"
	PageLogin              Page = "login"
	PageSignup             Page = "signup"
	PageUserSignup         Page = "user-signup"
	PageCollectorSignup    Page = "collector-signup"
	PageAdminInfo          Page = "admin-info"
	PageFeatures           Page = "features"
	PageBestPractices      Page = "best-practices"
	PageContactUs          Page = "contact-us"
	PageUserDashboard      Page = "user-dashboard"
	PageCollectorDashboard Page = "collector-dashboard"
	PagePickupDetails      Page = "pickup-details"
	PageSchedulePickup     Page = "schedule-pickup"
	PageAllPickups         Page = "all-pickups"
	PageAdminDashboard     Page = "admin-dashboard"
	PageManageUsers        Page = "manage-users"
	PageManageCollectors   Page = "manage-collectors"
	PageNotFound           Page = "not-found"
)

// Route maps a path to a page. Protected routes are evaluated by the guard with Roles.
type Route struct {
	Path      string
	Page      Page
	Protected bool
	Roles     RoleSet
}

// Resolution is what the renderer should do for a navigation
type Resolution struct {
	Route    Route
	Decision Decision
}

// Redirect returns the path to navigate to instead of rendering, or "".
func (r Resolution) Redirect() string {
	return r.Decision.Target()
}

func public(path string, page Page) Route {
	return Route{Path: path, Page: page}
}

func protected(path string, page Page, roles ...users.Role) Route {
	return Route{Path: path, Page: page, Protected: true, Roles: Roles(roles...)}
}

// DefaultRoutes is the application route table
func DefaultRoutes() []Route {
	return []Route{
		public(RouteHome, PageHome),
		public(RouteLogin, PageLogin),
		public(RouteSignup, PageSignup),
		public(RouteSignupUser, PageUserSignup),
		public(RouteSignupCollect, PageCollectorSignup),
		public(RouteSignupAdmin, PageAdminInfo),
		public(RouteFeatures, PageFeatures),
		public(RouteBestPractices, PageBestPractices),
		public(RouteContactUs, PageContactUs),

		// Any authenticated role
		protected(RouteUserDashboard, PageUserDashboard),
		protected(RouteCollectorDashboard, PageCollectorDashboard),
		protected(RoutePickupDetails, PagePickupDetails),
		protected(RouteSchedulePickup, PageSchedulePickup),
		protected(RouteAllPickups, PageAllPickups),

		// Admin only
		protected(RouteAdminDashboard, PageAdminDashboard, users.RoleAdmin),
		protected(RouteManageUsers, PageManageUsers, users.RoleAdmin),
		protected(RouteManageCollectors, PageManageCollectors, users.RoleAdmin),
	}
}

// Router resolves a path against the route table and the guard
type Router struct {
	guard  *Guard
	routes map[string]Route
}

func NewRouter(g *Guard, routes []Route) *Router {
	r := &Router{guard: g, routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		// First registration wins, like the duplicate /signup/admin entry in the route table
		if _, exists := r.routes[route.Path]; !exists {
			r.routes[route.Path] = route
		}
	}
	return r
}

// Lookup finds the route for path, ignoring a query string and a trailing slash.
func (r *Router) Lookup(path string) (Route, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = RouteHome
	}
	route, ok := r.routes[path]
	return route, ok
}

// Resolve returns the page for path and whether the current session may see it.
// Unknown paths resolve to the public not-found page.
func (r *Router) Resolve(path string) Resolution {
	route, ok := r.Lookup(path)
	if !ok {
		return Resolution{Route: public(path, PageNotFound), Decision: Decision{Kind: Allow}}
	}
	if !route.Protected {
		return Resolution{Route: route, Decision: Decision{Kind: Allow}}
	}
	return Resolution{Route: route, Decision: r.guard.AuthorizeSet(route.Roles)}
}
