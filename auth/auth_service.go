package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/internal/config"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/rs/zerolog/log"
)

const unifiedLoginPath = "/auth/login"

var loginPaths = map[users.Role]string{
	users.RoleUser:      "/users/login",
	users.RoleCollector: "/collectors/login",
	users.RoleAdmin:     "/admins/login",
}

var signupPaths = map[users.Role]string{
	users.RoleUser:      "/users/signup",
	users.RoleCollector: "/collectors/signup",
}

// Service runs the login, logout and signup flows on top of the gateway
type Service struct {
	client   *gateway.Client
	sessions sessions.Repo
	strategy string
}

// NewService creates the auth flow. strategy is config.LoginStrategySequential or config.LoginStrategyUnified.
func NewService(client *gateway.Client, strategy string) *Service {
	if strategy != config.LoginStrategyUnified {
		strategy = config.LoginStrategySequential
	}
	return &Service{
		client:   client,
		sessions: client.Sessions(),
		strategy: strategy,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
	Role  string          `json:"role,omitempty"`
}

// Login authenticates the credential, learns its role and stores the whole session in one write.
func (s *Service) Login(ctx context.Context, email, password string) (*sessions.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("[Service Login] email and password are required: %w", errors.ErrInvalidCredentials)
	}
	req := loginRequest{Email: strings.ToLower(email), Password: password}

	var (
		session *sessions.Session
		err     error
	)
	if s.strategy == config.LoginStrategyUnified {
		session, err = s.loginUnified(ctx, req)
	} else {
		session, err = s.loginSequential(ctx, req)
	}
	if err != nil {
		log.Err(err).Msg("Login failed")
		return nil, err
	}

	if err := s.sessions.Set(*session); err != nil {
		return nil, fmt.Errorf("[Service Login] store session: %w", err)
	}
	log.Info().Str("role", session.Role.String()).Msg("Logged in")
	return session, nil
}

func (s *Service) loginUnified(ctx context.Context, req loginRequest) (*sessions.Session, error) {
	resp, err := gateway.Do[loginResponse](ctx, s.client, http.MethodPost, unifiedLoginPath, req, gateway.Public())
	if err != nil {
		return nil, loginError(err)
	}
	role, err := users.ParseRole(resp.Role)
	if err != nil {
		return nil, fmt.Errorf("[Service Login] %w: %w", errors.ErrInvalidLoginResponse, err)
	}
	return newSession(resp, role)
}

// loginSequential tries each role endpoint in turn. Rejections move on to the next role;
// network failures and server errors stop the dispatch.
func (s *Service) loginSequential(ctx context.Context, req loginRequest) (*sessions.Session, error) {
	var lastErr error
	for _, role := range users.Roles {
		resp, err := gateway.Do[loginResponse](ctx, s.client, http.MethodPost, loginPaths[role], req, gateway.Public())
		if err == nil {
			return newSession(resp, role)
		}
		if !isRejection(err) {
			return nil, loginError(err)
		}
		log.Debug().Str("role", role.String()).Msg("Login rejected, trying next role")
		lastErr = err
	}
	return nil, loginError(lastErr)
}

func isRejection(err error) bool {
	switch gateway.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return true
	}
	return false
}

func loginError(err error) error {
	switch gateway.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return fmt.Errorf("[Service Login] %w: %w", errors.ErrInvalidCredentials, err)
	}
	return fmt.Errorf("[Service Login] %w", err)
}

func newSession(resp loginResponse, role users.Role) (*sessions.Session, error) {
	session := &sessions.Session{Token: resp.Token, Role: role, User: resp.User}
	if !session.Complete() {
		return nil, fmt.Errorf("[Service Login] token and user are required: %w", errors.ErrInvalidLoginResponse)
	}
	return session, nil
}

// Logout clears the session and returns the front end to the login view.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("[Service Logout] %w", err)
	}
	s.client.Navigator().Navigate(guard.RouteLogin)
	log.Info().Msg("Logged out")
	return nil
}

// CurrentUser returns the stored profile and role
func (s *Service) CurrentUser() (*users.Profile, users.Role, error) {
	session, err := s.sessions.Get()
	if err != nil {
		return nil, "", err
	}
	profile, err := session.Profile()
	if err != nil {
		return nil, session.Role, err
	}
	return &profile, session.Role, nil
}

// SignUp registers a household or collector account. Admin accounts are provisioned by the operators.
func (s *Service) SignUp(ctx context.Context, role users.Role, form SignupForm) (*users.Profile, error) {
	if role == users.RoleAdmin {
		return nil, errors.ErrAdminSignupUnsupported
	}
	path, ok := signupPaths[role]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidRole, "[Service SignUp] %q", role)
	}
	if err := form.Validate(role); err != nil {
		return nil, err
	}

	profile, err := gateway.DoKey[users.Profile](ctx, s.client, http.MethodPost, path, "user", form.request(), gateway.Public())
	if err != nil {
		return nil, fmt.Errorf("[Service SignUp] %w", err)
	}
	log.Info().Str("role", role.String()).Str("email", profile.Email).Msg("Account created")
	return &profile, nil
}
