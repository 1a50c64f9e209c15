package guard

import "github.com/jrsteele09/recyclemate/users"

// Route path constants
const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteSignup        = "/signup"
	RouteSignupUser    = "/signup/user"
	RouteSignupCollect = "/signup/collector"
	RouteSignupAdmin   = "/signup/admin"
	RouteFeatures      = "/features"
	RouteBestPractices = "/best-practices"
	RouteContactUs     = "/contact-us"

	RouteUserDashboard      = "/user-dashboard"
	RouteCollectorDashboard = "/collector-dashboard"
	RoutePickupDetails      = "/pickup-details"
	RouteSchedulePickup     = "/schedule-pickup"
	RouteAllPickups         = "/all-pickups"

	RouteAdminDashboard   = "/admin-dashboard"
	RouteManageUsers      = "/manage-users"
	RouteManageCollectors = "/manage-collectors"
)

var roleHomes = map[users.Role]string{
	users.RoleUser:      RouteUserDashboard,
	users.RoleCollector: RouteCollectorDashboard,
	users.RoleAdmin:     RouteAdminDashboard,
}

// RoleHome returns the landing page of a recognised role
func RoleHome(role users.Role) (string, bool) {
	route, ok := roleHomes[role]
	return route, ok
}
