package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/recyclemate/auth"
	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/internal/config"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/internal/fakeapi"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/sessions/memstore"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/stretchr/testify/require"
)

const password = "Recycle123"

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

type fixture struct {
	backend   *fakeapi.Server
	storage   *memstore.InMemoryStorage
	repo      *sessions.Store
	navigator *recordingNavigator
	client    *gateway.Client
	service   *auth.Service
}

func setupFixture(t *testing.T, strategy string) *fixture {
	t.Helper()
	f := &fixture{
		backend:   fakeapi.New(),
		storage:   memstore.New(),
		navigator: &recordingNavigator{},
	}
	f.repo = sessions.NewStore(f.storage)
	server := httptest.NewServer(f.backend)
	t.Cleanup(server.Close)

	f.client = gateway.New(f.repo, gateway.WithNavigator(f.navigator))
	require.NoError(t, f.client.Configure(server.URL+"/api"))
	f.service = auth.NewService(f.client, strategy)
	return f
}

func (f *fixture) seed(t *testing.T, role users.Role, email string) *users.Account {
	t.Helper()
	account, err := f.backend.SeedAccount(role, "Sam "+role.String(), email, password)
	require.NoError(t, err)
	return account
}

func TestLogin_Sequential(t *testing.T) {
	f := setupFixture(t, config.LoginStrategySequential)
	account := f.seed(t, users.RoleCollector, "sam@collect.example")

	session, err := f.service.Login(context.Background(), "Sam@Collect.example", password)
	require.NoError(t, err)
	require.Equal(t, users.RoleCollector, session.Role)
	require.NotEmpty(t, session.Token)

	stored, err := f.repo.Get()
	require.NoError(t, err)
	require.Equal(t, *session, *stored)

	profile, err := stored.Profile()
	require.NoError(t, err)
	require.Equal(t, account.ID, profile.ID)

	// Role endpoints are tried in order and the dispatch stops at the first success
	require.Equal(t, 1, f.backend.Calls(http.MethodPost, "/api/users/login"))
	require.Equal(t, 1, f.backend.Calls(http.MethodPost, "/api/collectors/login"))
	require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/admins/login"))

	// Rejections from the other role endpoints are not session expiry
	require.Empty(t, f.navigator.Routes())
}

func TestLogin_Unified(t *testing.T) {
	f := setupFixture(t, config.LoginStrategyUnified)
	f.seed(t, users.RoleAdmin, "root@recyclemate.example")

	session, err := f.service.Login(context.Background(), "root@recyclemate.example", password)
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, session.Role)
	require.Equal(t, 1, f.backend.Calls(http.MethodPost, "/api/auth/login"))
	require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/users/login"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	for _, strategy := range []string{config.LoginStrategySequential, config.LoginStrategyUnified} {
		t.Run(strategy, func(t *testing.T) {
			f := setupFixture(t, strategy)
			f.seed(t, users.RoleUser, "pat@home.example")

			_, err := f.service.Login(context.Background(), "pat@home.example", "WrongPass1")
			require.ErrorIs(t, err, errors.ErrInvalidCredentials)

			_, err = f.repo.Get()
			require.ErrorIs(t, err, errors.ErrSessionNotFound)
			require.Empty(t, f.navigator.Routes())
		})
	}

	t.Run("all role endpoints tried", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		_, err := f.service.Login(context.Background(), "nobody@home.example", password)
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
		require.True(t, gateway.IsUnauthorized(err))
		for _, path := range []string{"/api/users/login", "/api/collectors/login", "/api/admins/login"} {
			require.Equal(t, 1, f.backend.Calls(http.MethodPost, path), path)
		}
	})

	t.Run("empty fields never reach the backend", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		_, err := f.service.Login(context.Background(), "  ", password)
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
		require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/users/login"))
	})
}

func TestLogin_PendingCollectorStopsDispatch(t *testing.T) {
	f := setupFixture(t, config.LoginStrategySequential)
	form := validForm()
	form.Email, form.VehicleType, form.ServiceArea = "new@collect.example", "Van", "North"
	_, err := f.service.SignUp(context.Background(), users.RoleCollector, form)
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), "new@collect.example", password)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, gateway.StatusCode(err))
	require.NotErrorIs(t, err, errors.ErrInvalidCredentials)

	var httpErr *gateway.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "Collector account is pending approval", httpErr.Message)
	require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/admins/login"))
}

// loginBackend answers every login endpoint with the given handler
func loginBackend(t *testing.T, strategy string, handler http.HandlerFunc) (*auth.Service, *sessions.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	repo := memstore.NewRepo()
	client := gateway.New(repo, gateway.WithNavigator(&recordingNavigator{}))
	require.NoError(t, client.Configure(server.URL))
	return auth.NewService(client, strategy), repo
}

func TestLogin_ServerErrorStopsDispatch(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	service, repo := loginBackend(t, config.LoginStrategySequential, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database unavailable"}`))
	})

	_, err := service.Login(context.Background(), "pat@home.example", password)
	require.Error(t, err)
	require.NotErrorIs(t, err, errors.ErrInvalidCredentials)
	require.Equal(t, http.StatusInternalServerError, gateway.StatusCode(err))

	mu.Lock()
	require.Equal(t, []string{"/users/login"}, paths)
	mu.Unlock()

	_, err = repo.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestLogin_MalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		body     string
	}{
		{"missing token", config.LoginStrategySequential, `{"user":{"id":"u1"}}`},
		{"missing user", config.LoginStrategySequential, `{"token":"abc"}`},
		{"null user", config.LoginStrategySequential, `{"token":"abc","user":null}`},
		{"unified without role", config.LoginStrategyUnified, `{"token":"abc","user":{"id":"u1"}}`},
		{"unified with unknown role", config.LoginStrategyUnified, `{"token":"abc","user":{"id":"u1"},"role":"driver"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := loginBackend(t, tt.strategy, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := service.Login(context.Background(), "pat@home.example", password)
			require.ErrorIs(t, err, errors.ErrInvalidLoginResponse)

			_, err = repo.Get()
			require.ErrorIs(t, err, errors.ErrSessionNotFound)
		})
	}
}

func TestLogoutRoundTrip(t *testing.T) {
	f := setupFixture(t, config.LoginStrategySequential)
	f.seed(t, users.RoleUser, "pat@home.example")
	g := guard.New(f.repo)

	require.Equal(t, guard.RedirectToLogin, g.Authorize(users.RoleUser).Kind)

	session, err := f.service.Login(context.Background(), "pat@home.example", password)
	require.NoError(t, err)

	// Storage holds exactly the token, user and role keys
	require.Equal(t, 3, f.storage.Len())
	for key, want := range map[string]string{
		sessions.KeyToken: session.Token,
		sessions.KeyRole:  string(users.RoleUser),
		sessions.KeyUser:  string(session.User),
	} {
		got, ok, err := f.storage.Get(key)
		require.NoError(t, err)
		require.True(t, ok, key)
		require.Equal(t, want, got, key)
	}

	require.Equal(t, guard.Allow, g.Authorize().Kind)
	require.Equal(t, guard.Allow, g.Authorize(users.RoleUser).Kind)
	require.Equal(t, guard.Decision{Kind: guard.RedirectToRoleHome, Role: users.RoleUser}, g.Authorize(users.RoleAdmin))

	require.NoError(t, f.service.Logout())
	require.Equal(t, 0, f.storage.Len())
	require.Equal(t, guard.RedirectToLogin, g.Authorize().Kind)
	require.Equal(t, guard.RedirectToLogin, g.Authorize(users.RoleUser).Kind)
	require.Equal(t, []string{guard.RouteLogin}, f.navigator.Routes())

	// Logging out twice is harmless
	require.NoError(t, f.service.Logout())
}

func TestCurrentUser(t *testing.T) {
	f := setupFixture(t, config.LoginStrategySequential)
	account := f.seed(t, users.RoleUser, "pat@home.example")

	_, _, err := f.service.CurrentUser()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	_, err = f.service.Login(context.Background(), "pat@home.example", password)
	require.NoError(t, err)

	profile, role, err := f.service.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, users.RoleUser, role)
	require.Equal(t, account.ID, profile.ID)
	require.Equal(t, "pat@home.example", profile.Email)
}

func validForm() auth.SignupForm {
	return auth.SignupForm{
		Name:            "Pat Household",
		Email:           "Pat@Home.example",
		Phone:           "555-0100",
		Address:         "1 Green Street",
		Password:        password,
		ConfirmPassword: password,
	}
}

func TestSignUp(t *testing.T) {
	t.Run("household then login", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		profile, err := f.service.SignUp(context.Background(), users.RoleUser, validForm())
		require.NoError(t, err)
		require.Equal(t, "pat@home.example", profile.Email)
		require.Equal(t, users.RoleUser, profile.Role)
		require.NotEmpty(t, profile.ID)

		session, err := f.service.Login(context.Background(), "pat@home.example", password)
		require.NoError(t, err)
		require.Equal(t, users.RoleUser, session.Role)
	})

	t.Run("collector is pending", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		form := validForm()
		form.VehicleType = "Truck"
		form.ServiceArea = "North"
		profile, err := f.service.SignUp(context.Background(), users.RoleCollector, form)
		require.NoError(t, err)
		require.Equal(t, users.StatusPending, profile.Status)
		require.Equal(t, "Truck", profile.VehicleType)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		f.seed(t, users.RoleUser, "pat@home.example")
		_, err := f.service.SignUp(context.Background(), users.RoleUser, validForm())
		require.Equal(t, http.StatusConflict, gateway.StatusCode(err))
		require.Empty(t, f.navigator.Routes())
	})

	t.Run("admin cannot self register", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		_, err := f.service.SignUp(context.Background(), users.RoleAdmin, validForm())
		require.ErrorIs(t, err, errors.ErrAdminSignupUnsupported)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)
		_, err := f.service.SignUp(context.Background(), users.Role("driver"), validForm())
		require.ErrorIs(t, err, errors.ErrInvalidRole)
	})

	t.Run("invalid forms never reach the backend", func(t *testing.T) {
		f := setupFixture(t, config.LoginStrategySequential)

		weak := validForm()
		weak.Password, weak.ConfirmPassword = "recycle", "recycle"
		_, err := f.service.SignUp(context.Background(), users.RoleUser, weak)
		require.ErrorIs(t, err, errors.ErrWeakPassword)

		_, err = f.service.SignUp(context.Background(), users.RoleCollector, validForm())
		require.ErrorIs(t, err, errors.ErrInvalidSignupForm)

		named := validForm()
		named.Email = "Jane Smith <jane@x.com>"
		_, err = f.service.SignUp(context.Background(), users.RoleUser, named)
		require.ErrorIs(t, err, errors.ErrInvalidSignupForm)

		require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/users/signup"))
		require.Equal(t, 0, f.backend.Calls(http.MethodPost, "/api/collectors/signup"))
	})
}
