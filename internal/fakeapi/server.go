// Package fakeapi is an in-process stand-in for the RecycleMate backend, used by tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jrsteele09/recyclemate/pickups"
	fakepickuprepo "github.com/jrsteele09/recyclemate/pickups/repofake"
	"github.com/jrsteele09/recyclemate/users"
	fakeuserrepo "github.com/jrsteele09/recyclemate/users/repofake"
)

// Server implements the REST surface the client consumes
type Server struct {
	router  chi.Router
	users   users.UserRepo
	pickups pickups.Repo
	tokens  *tokenIssuer

	mu    sync.Mutex
	calls map[string]int // "METHOD /path pattern" -> count
}

func New() *Server {
	s := &Server{
		router:  chi.NewRouter(),
		users:   fakeuserrepo.NewFakeUserRepo(),
		pickups: fakepickuprepo.NewFakePickupRepo(),
		tokens:  newTokenIssuer(time.Hour),
		calls:   make(map[string]int),
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	r := s.router
	r.Use(middleware.Recoverer, s.countCalls)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints
		r.Post("/auth/login", s.UnifiedLoginHandler())
		r.Post("/users/login", s.LoginHandler(users.RoleUser))
		r.Post("/collectors/login", s.LoginHandler(users.RoleCollector))
		r.Post("/admins/login", s.LoginHandler(users.RoleAdmin))
		r.Post("/users/signup", s.SignupHandler(users.RoleUser))
		r.Post("/collectors/signup", s.SignupHandler(users.RoleCollector))

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth, RequireRole(users.RoleUser))
			r.Post("/pickups", s.SchedulePickupHandler())
			r.Get("/pickups", s.ListPickupsHandler())
			r.Get("/pickups/{id}", s.GetPickupHandler())
			r.Patch("/pickups/{id}/cancel", s.CancelPickupHandler())
		})

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth, RequireRole(users.RoleCollector))
			r.Get("/collectors/pickups", s.CollectorPickupsHandler())
			r.Patch("/collectors/pickups/{id}/accept", s.AcceptPickupHandler())
			r.Patch("/collectors/pickups/{id}/status", s.CollectorStatusHandler())
		})

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth, RequireRole(users.RoleAdmin))
			r.Get("/admins/users", s.AdminUsersHandler())
			r.Delete("/admins/users/{id}", s.AdminDeleteUserHandler())
			r.Get("/admins/collectors", s.AdminCollectorsHandler())
			r.Patch("/admins/collectors/{id}/approve", s.AdminApproveCollectorHandler())
			r.Get("/admins/pickups", s.AdminPickupsHandler())
			r.Patch("/admins/pickups/{id}/status", s.AdminPickupStatusHandler())
		})
	})
}

func (s *Server) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Calls returns how many times METHOD path was requested
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// SeedAccount stores an account with the given password and returns it
func (s *Server) SeedAccount(role users.Role, name, email, password string) (*users.Account, error) {
	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[fakeapi SeedAccount] %w", err)
	}
	account := &users.Account{
		Profile: users.Profile{
			Name:       name,
			Email:      strings.ToLower(email),
			Role:       role,
			Status:     users.StatusActive,
			Approved:   role == users.RoleCollector,
			DateJoined: time.Now().UTC(),
		},
		PasswordHash: hash,
	}
	if err := s.users.Upsert(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Accounts lists the stored profiles of role
func (s *Server) Accounts(role users.Role) ([]users.Profile, error) {
	accounts, err := s.users.List(role)
	if err != nil {
		return nil, err
	}
	return profiles(accounts), nil
}

// SeedPickup stores a pickup as-is
func (s *Server) SeedPickup(p pickups.Pickup) (*pickups.Pickup, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if err := s.pickups.Upsert(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// IssueToken mints a valid token for account without going through login
func (s *Server) IssueToken(account *users.Account) (string, error) {
	return s.tokens.Issue(account)
}

// RevokeAll invalidates every token issued so far; the next authenticated call answers 401.
func (s *Server) RevokeAll() {
	s.tokens.RevokeAll()
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
