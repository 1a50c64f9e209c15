package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/pickups"
)

// PickupService is the household view of pickups
type PickupService struct {
	client *gateway.Client
}

func NewPickupService(client *gateway.Client) *PickupService {
	return &PickupService{client: client}
}

// Schedule requests a new pickup. The form is validated before it is sent.
func (s *PickupService) Schedule(ctx context.Context, req pickups.Request) (pickups.Pickup, error) {
	if err := req.Validate(); err != nil {
		return pickups.Pickup{}, err
	}
	p, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodPost, "/pickups", "pickup", req)
	if err != nil {
		return p, fmt.Errorf("[PickupService Schedule] %w", err)
	}
	return p, nil
}

func (s *PickupService) List(ctx context.Context) ([]pickups.Pickup, error) {
	list, err := gateway.DoKey[[]pickups.Pickup](ctx, s.client, http.MethodGet, "/pickups", "pickups", nil)
	if err != nil {
		return nil, fmt.Errorf("[PickupService List] %w", err)
	}
	return listOrEmpty(list), nil
}

func (s *PickupService) Get(ctx context.Context, id string) (pickups.Pickup, error) {
	path, err := resourcePath("/pickups", id, "")
	if err != nil {
		return pickups.Pickup{}, err
	}
	p, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodGet, path, "pickup", nil)
	if err != nil {
		return p, fmt.Errorf("[PickupService Get] %w", err)
	}
	return p, nil
}

// Cancel cancels p unless it has already finished.
func (s *PickupService) Cancel(ctx context.Context, p pickups.Pickup) (pickups.Pickup, error) {
	if err := checkTransition(p, pickups.StatusCancelled); err != nil {
		return p, err
	}
	path, err := resourcePath("/pickups", p.ID, "/cancel")
	if err != nil {
		return p, err
	}
	updated, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodPatch, path, "pickup", nil)
	if err != nil {
		return p, fmt.Errorf("[PickupService Cancel] %w", err)
	}
	return updated, nil
}

// Summary fetches the caller's pickups and condenses them for the dashboard
func (s *PickupService) Summary(ctx context.Context) (pickups.Summary, error) {
	list, err := s.List(ctx)
	if err != nil {
		return pickups.Summary{}, err
	}
	return pickups.Summarize(list), nil
}
