package fakeapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/recyclemate/pickups"
)

func (s *Server) SchedulePickupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pickups.Request
		if err := readJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		p := pickups.Pickup{
			UserID:    accountID(r),
			Type:      req.Type,
			Materials: req.Materials,
			Address:   req.Address,
			Date:      req.Date,
			TimeSlot:  req.TimeSlot,
			Notes:     req.Notes,
			Status:    pickups.StatusPending,
			CreatedAt: NowTimeFunc().UTC(),
		}
		if account, err := s.users.GetByID(p.UserID); err == nil {
			p.UserName = account.Name
		}
		if err := s.pickups.Upsert(&p); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to schedule pickup")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"pickup": p})
	}
}

func (s *Server) ListPickupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.pickups.ListByUser(accountID(r))
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list pickups")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pickups": list})
	}
}

// ownPickup loads the pickup in the URL and checks it belongs to the caller
func (s *Server) ownPickup(w http.ResponseWriter, r *http.Request) (*pickups.Pickup, bool) {
	p, err := s.pickups.Get(chi.URLParam(r, "id"))
	if err != nil || p.UserID != accountID(r) {
		writeMessage(w, http.StatusNotFound, "Pickup not found")
		return nil, false
	}
	return p, true
}

func (s *Server) GetPickupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.ownPickup(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pickup": p})
	}
}

func (s *Server) CancelPickupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.ownPickup(w, r)
		if !ok {
			return
		}
		s.applyStatus(w, p, pickups.StatusUpdate{Status: pickups.StatusCancelled})
	}
}

func (s *Server) applyStatus(w http.ResponseWriter, p *pickups.Pickup, update pickups.StatusUpdate) {
	if err := pickups.Transition(p.Status, update.Status); err != nil {
		writeMessage(w, http.StatusConflict, err.Error())
		return
	}
	p.Status = update.Status
	if update.WeightKg > 0 {
		p.WeightKg = update.WeightKg
	}
	if err := s.pickups.Upsert(p); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to update pickup")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pickup": p})
}

func readStatusUpdate(w http.ResponseWriter, r *http.Request) (pickups.StatusUpdate, bool) {
	var update pickups.StatusUpdate
	if err := readJSON(r, &update); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return update, false
	}
	st, err := pickups.ParseStatus(string(update.Status))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unknown status")
		return update, false
	}
	update.Status = st
	return update, true
}

func (s *Server) CollectorPickupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.pickups.ListForCollector(accountID(r))
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list pickups")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pickups": list})
	}
}

func (s *Server) AcceptPickupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.pickups.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Pickup not found")
			return
		}
		if p.CollectorID != "" && p.CollectorID != accountID(r) {
			writeMessage(w, http.StatusConflict, "Pickup already accepted by another collector")
			return
		}
		p.CollectorID = accountID(r)
		s.applyStatus(w, p, pickups.StatusUpdate{Status: pickups.StatusScheduled})
	}
}

func (s *Server) CollectorStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update, ok := readStatusUpdate(w, r)
		if !ok {
			return
		}
		p, err := s.pickups.Get(chi.URLParam(r, "id"))
		if err != nil || p.CollectorID != accountID(r) {
			writeMessage(w, http.StatusNotFound, "Pickup not found")
			return
		}
		s.applyStatus(w, p, update)
	}
}

func (s *Server) AdminPickupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.pickups.List()
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list pickups")
			return
		}
		if status := r.URL.Query().Get("status"); status != "" {
			filtered := list[:0]
			for _, p := range list {
				if strings.EqualFold(string(p.Status), status) {
					filtered = append(filtered, p)
				}
			}
			list = filtered
		}
		writeJSON(w, http.StatusOK, map[string]any{"pickups": list})
	}
}

func (s *Server) AdminPickupStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update, ok := readStatusUpdate(w, r)
		if !ok {
			return
		}
		p, err := s.pickups.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Pickup not found")
			return
		}
		s.applyStatus(w, p, update)
	}
}
