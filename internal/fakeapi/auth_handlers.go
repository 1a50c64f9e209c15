package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/recyclemate/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *users.Profile `json:"user"`
	Token string         `json:"token"`
	Role  users.Role     `json:"role,omitempty"`
}

func (s *Server) authenticate(role users.Role, req loginRequest) (*users.Account, int, string) {
	account, err := s.users.GetByEmail(role, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !users.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, http.StatusUnauthorized, "Invalid email or password"
	}
	if account.Role == users.RoleCollector && !account.Approved {
		return nil, http.StatusForbidden, "Collector account is pending approval"
	}
	return account, http.StatusOK, ""
}

func (s *Server) respondWithToken(w http.ResponseWriter, account *users.Account, includeRole bool) {
	token, err := s.tokens.Issue(account)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	resp := loginResponse{User: &account.Profile, Token: token}
	if includeRole {
		resp.Role = account.Role
	}
	writeJSON(w, http.StatusOK, resp)
}

// LoginHandler serves the role specific login endpoints. The role is implied by the endpoint.
func (s *Server) LoginHandler(role users.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		account, status, msg := s.authenticate(role, req)
		if account == nil {
			writeMessage(w, status, msg)
			return
		}
		s.respondWithToken(w, account, false)
	}
}

// UnifiedLoginHandler authenticates against every role and reports the matching one
func (s *Server) UnifiedLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		status, msg := http.StatusUnauthorized, "Invalid email or password"
		for _, role := range users.Roles {
			account, st, m := s.authenticate(role, req)
			if account != nil {
				s.respondWithToken(w, account, true)
				return
			}
			if st != http.StatusUnauthorized {
				status, msg = st, m
			}
		}
		writeMessage(w, status, msg)
	}
}

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicle_type,omitempty"`
	ServiceArea string `json:"service_area,omitempty"`
}

func (s *Server) SignupHandler(role users.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := readJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Name == "" {
			writeMessage(w, http.StatusBadRequest, "Name and email are required")
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := s.users.GetByEmail(role, email); err == nil {
			writeMessage(w, http.StatusConflict, "An account with this email already exists")
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to store password")
			return
		}
		account := &users.Account{
			Profile: users.Profile{
				Name:        req.Name,
				Email:       email,
				Phone:       req.Phone,
				Address:     req.Address,
				Role:        role,
				Status:      users.StatusActive,
				DateJoined:  time.Now().UTC(),
				VehicleType: req.VehicleType,
				ServiceArea: req.ServiceArea,
			},
			PasswordHash: hash,
		}
		if role == users.RoleCollector {
			account.Status = users.StatusPending
		}
		if err := s.users.Upsert(account); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"user": account.Profile, "message": "Account created"})
	}
}
