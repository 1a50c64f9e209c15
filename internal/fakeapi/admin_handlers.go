package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/recyclemate/users"
)

func profiles(accounts []*users.Account) []users.Profile {
	list := make([]users.Profile, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, a.Profile)
	}
	return list
}

func (s *Server) AdminUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := s.users.List(users.RoleUser)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list users")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": profiles(accounts)})
	}
}

func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == accountID(r) {
			writeMessage(w, http.StatusBadRequest, "Admins cannot delete their own account")
			return
		}
		if err := s.users.Delete(id); err != nil {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusOK, "User deleted")
	}
}

func (s *Server) AdminCollectorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := s.users.List(users.RoleCollector)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list collectors")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"collectors": profiles(accounts)})
	}
}

func (s *Server) AdminApproveCollectorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := s.users.GetByID(chi.URLParam(r, "id"))
		if err != nil || account.Role != users.RoleCollector {
			writeMessage(w, http.StatusNotFound, "Collector not found")
			return
		}
		if err := s.users.SetApproved(account.ID, true); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to approve collector")
			return
		}
		if account, err = s.users.GetByID(account.ID); err != nil {
			writeMessage(w, http.StatusNotFound, "Collector not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"collector": account.Profile, "message": "Collector approved"})
	}
}
