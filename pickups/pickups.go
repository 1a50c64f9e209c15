package pickups

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jrsteele09/recyclemate/internal/errors"
)

type Status string

const (
	StatusPending    Status = "Pending"     // Requested by a user, no collector yet
	StatusScheduled  Status = "Scheduled"   // Accepted by a collector
	StatusInProgress Status = "In Progress" // Collector on the way or collecting
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInvalidStatus, "%q", s)
}

// Terminal statuses accept no further transitions
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusScheduled, StatusCancelled},
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates moving a pickup from one status to another
func Transition(from, to Status) error {
	if from.Terminal() {
		return fmt.Errorf("pickup is already %s: %w", strings.ToLower(string(from)), errors.ErrInvalidTransition)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("cannot move pickup from %s to %s: %w", from, to, errors.ErrInvalidTransition)
	}
	return nil
}

type WasteType string

const (
	TypeRegular   WasteType = "Regular"
	TypeBulk      WasteType = "Bulk"
	TypeHazardous WasteType = "Hazardous"
)

func (t WasteType) Valid() bool {
	return t == TypeRegular || t == TypeBulk || t == TypeHazardous
}

const DateLayout = "2006-01-02"

type Pickup struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	CollectorID string    `json:"collector_id,omitempty"`
	Type        WasteType `json:"type"`
	Materials   []string  `json:"materials,omitempty"`
	Address     string    `json:"address"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      Status    `json:"status"`
	WeightKg    float64   `json:"weight_kg,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Request is the schedule-pickup form
type Request struct {
	Type      WasteType `json:"type"`
	Materials []string  `json:"materials,omitempty"`
	Address   string    `json:"address"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

func (r Request) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("unknown waste type %q: %w", r.Type, errors.ErrInvalidPickup)
	}
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("pickup address is required: %w", errors.ErrInvalidPickup)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("pickup date must be YYYY-MM-DD: %w", errors.ErrInvalidPickup)
	}
	return nil
}

// StatusUpdate is the body of a status change request
type StatusUpdate struct {
	Status   Status  `json:"status"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

// Summary is the dashboard overview of a pickup list
type Summary struct {
	Total         int
	ByStatus      map[Status]int
	TotalWeightKg float64 // Completed pickups only
	Points        int     // Ten points per completed kilogram
}

func (s Summary) Active() int {
	return s.ByStatus[StatusPending] + s.ByStatus[StatusScheduled] + s.ByStatus[StatusInProgress]
}

func Summarize(list []Pickup) Summary {
	s := Summary{ByStatus: make(map[Status]int)}
	for _, p := range list {
		s.Total++
		s.ByStatus[p.Status]++
		if p.Status == StatusCompleted {
			s.TotalWeightKg += p.WeightKg
		}
	}
	s.Points = int(math.Round(s.TotalWeightKg * 10))
	return s
}
