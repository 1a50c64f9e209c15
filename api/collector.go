package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/pickups"
)

// CollectorService is the collector dashboard's view of pickups
type CollectorService struct {
	client *gateway.Client
}

func NewCollectorService(client *gateway.Client) *CollectorService {
	return &CollectorService{client: client}
}

// Assigned returns the collector's pickups plus unassigned pending requests.
func (s *CollectorService) Assigned(ctx context.Context) ([]pickups.Pickup, error) {
	list, err := gateway.DoKey[[]pickups.Pickup](ctx, s.client, http.MethodGet, "/collectors/pickups", "pickups", nil)
	if err != nil {
		return nil, fmt.Errorf("[CollectorService Assigned] %w", err)
	}
	return listOrEmpty(list), nil
}

func (s *CollectorService) Accept(ctx context.Context, p pickups.Pickup) (pickups.Pickup, error) {
	if err := checkTransition(p, pickups.StatusScheduled); err != nil {
		return p, err
	}
	path, err := resourcePath("/collectors/pickups", p.ID, "/accept")
	if err != nil {
		return p, err
	}
	updated, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodPatch, path, "pickup", nil)
	if err != nil {
		return p, fmt.Errorf("[CollectorService Accept] %w", err)
	}
	return updated, nil
}

func (s *CollectorService) UpdateStatus(ctx context.Context, p pickups.Pickup, update pickups.StatusUpdate) (pickups.Pickup, error) {
	if err := checkTransition(p, update.Status); err != nil {
		return p, err
	}
	path, err := resourcePath("/collectors/pickups", p.ID, "/status")
	if err != nil {
		return p, err
	}
	updated, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodPatch, path, "pickup", update)
	if err != nil {
		return p, fmt.Errorf("[CollectorService UpdateStatus] %w", err)
	}
	return updated, nil
}
