package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jrsteele09/recyclemate/api"
	"github.com/jrsteele09/recyclemate/auth"
	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/internal/config"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/sessions/filestore"
	"github.com/jrsteele09/recyclemate/users"
)

var errAccessDenied = errors.New("access denied")

// app wires the client core for one CLI invocation. The session file plays the role of
// the browser's local storage.
type app struct {
	cfg    config.Config
	in     io.Reader
	out    io.Writer
	repo   sessions.Repo
	client *gateway.Client
	auth   *auth.Service
	router *guard.Router
	guard  *guard.Guard

	pickups   *api.PickupService
	collector *api.CollectorService
	admin     *api.AdminService
}

func newApp(cfg config.Config, in io.Reader, out io.Writer) (*app, error) {
	a := &app{
		cfg:  cfg,
		in:   in,
		out:  out,
		repo: filestore.NewRepo(cfg.GetSessionFile()),
	}
	a.client = gateway.New(a.repo,
		gateway.WithTimeout(cfg.GetRequestTimeout()),
		gateway.WithEnv(cfg.GetEnv()),
		gateway.WithNavigator(gateway.NavigatorFunc(a.navigate)),
	)
	if err := a.client.Configure(cfg.GetAPIBaseURL()); err != nil {
		return nil, err
	}

	a.auth = auth.NewService(a.client, cfg.GetLoginStrategy())
	a.guard = guard.New(a.repo)
	a.router = guard.NewRouter(a.guard, guard.DefaultRoutes())
	a.pickups = api.NewPickupService(a.client)
	a.collector = api.NewCollectorService(a.client)
	a.admin = api.NewAdminService(a.client)
	return a, nil
}

func (a *app) navigate(route string) {
	color.New(color.FgYellow).Fprintf(a.out, "-> %s\n", route)
}

// enter runs the guard for a view before the command touches the backend.
// roles narrows views that the route table opens to any signed in role.
func (a *app) enter(path string, roles ...users.Role) error {
	decision := a.router.Resolve(path).Decision
	if decision.Allowed() && len(roles) > 0 {
		decision = a.guard.Authorize(roles...)
	}
	if decision.Allowed() {
		return nil
	}
	a.navigate(decision.Target())
	return fmt.Errorf("%s: %w", path, errAccessDenied)
}
