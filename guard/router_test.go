package guard_test

import (
	"testing"

	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/sessions/memstore"
	"github.com/stretchr/testify/require"
)

func TestRouter_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		stored   map[string]string
		path     string
		page     guard.Page
		redirect string
	}{
		{"public page without session", map[string]string{}, "/features", guard.PageFeatures, ""},
		{"home", map[string]string{}, "", guard.PageHome, ""},
		{"unknown path", map[string]string{}, "/no-such-page", guard.PageNotFound, ""},
		{"dashboard without session", map[string]string{}, "/user-dashboard", guard.PageUserDashboard, "/login"},
		{"dashboard any role", session("collector"), "/user-dashboard", guard.PageUserDashboard, ""},
		{"schedule with query string", session("user"), "/schedule-pickup?type=Bulk", guard.PageSchedulePickup, ""},
		{"trailing slash", session("user"), "/all-pickups/", guard.PageAllPickups, ""},
		{"admin page as admin", session("admin"), "/manage-users", guard.PageManageUsers, ""},
		{"admin page as user", session("user"), "/manage-collectors", guard.PageManageCollectors, "/user-dashboard"},
		{"admin page as collector", session("collector"), "/admin-dashboard", guard.PageAdminDashboard, "/collector-dashboard"},
		{"admin page unknown role", session("guest"), "/admin-dashboard", guard.PageAdminDashboard, "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, g := storeWith(t, tc.stored)
			router := guard.NewRouter(g, guard.DefaultRoutes())

			res := router.Resolve(tc.path)
			require.Equal(t, tc.page, res.Route.Page)
			require.Equal(t, tc.redirect, res.Redirect())
			require.Equal(t, tc.redirect == "", res.Decision.Allowed())
		})
	}
}

func TestRouter_FirstRegistrationWins(t *testing.T) {
	routes := append(guard.DefaultRoutes(), guard.Route{Path: guard.RouteSignupAdmin, Page: guard.PageNotFound})
	router := guard.NewRouter(guard.New(memstore.NewRepo()), routes)

	route, ok := router.Lookup(guard.RouteSignupAdmin)
	require.True(t, ok)
	require.Equal(t, guard.PageAdminInfo, route.Page)
}
