package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jrsteele09/recyclemate/gateway"
	"github.com/jrsteele09/recyclemate/pickups"
	"github.com/jrsteele09/recyclemate/users"
)

// AdminService backs the admin dashboard: account management and the global pickup list
type AdminService struct {
	client *gateway.Client
}

func NewAdminService(client *gateway.Client) *AdminService {
	return &AdminService{client: client}
}

func (s *AdminService) Users(ctx context.Context) ([]users.Profile, error) {
	list, err := gateway.DoKey[[]users.Profile](ctx, s.client, http.MethodGet, "/admins/users", "users", nil)
	if err != nil {
		return nil, fmt.Errorf("[AdminService Users] %w", err)
	}
	return listOrEmpty(list), nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	path, err := resourcePath("/admins/users", id, "")
	if err != nil {
		return err
	}
	if _, err := s.client.Request(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("[AdminService DeleteUser] %w", err)
	}
	return nil
}

func (s *AdminService) Collectors(ctx context.Context) ([]users.Profile, error) {
	list, err := gateway.DoKey[[]users.Profile](ctx, s.client, http.MethodGet, "/admins/collectors", "collectors", nil)
	if err != nil {
		return nil, fmt.Errorf("[AdminService Collectors] %w", err)
	}
	return listOrEmpty(list), nil
}

// ApproveCollector lets a pending collector log in
func (s *AdminService) ApproveCollector(ctx context.Context, id string) (users.Profile, error) {
	path, err := resourcePath("/admins/collectors", id, "/approve")
	if err != nil {
		return users.Profile{}, err
	}
	profile, err := gateway.DoKey[users.Profile](ctx, s.client, http.MethodPatch, path, "collector", nil)
	if err != nil {
		return profile, fmt.Errorf("[AdminService ApproveCollector] %w", err)
	}
	return profile, nil
}

// Pickups lists every pickup, optionally only those in status. An empty status means all.
func (s *AdminService) Pickups(ctx context.Context, status pickups.Status) ([]pickups.Pickup, error) {
	path := "/admins/pickups"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	list, err := gateway.DoKey[[]pickups.Pickup](ctx, s.client, http.MethodGet, path, "pickups", nil)
	if err != nil {
		return nil, fmt.Errorf("[AdminService Pickups] %w", err)
	}
	return listOrEmpty(list), nil
}

func (s *AdminService) UpdatePickupStatus(ctx context.Context, p pickups.Pickup, update pickups.StatusUpdate) (pickups.Pickup, error) {
	if err := checkTransition(p, update.Status); err != nil {
		return p, err
	}
	path, err := resourcePath("/admins/pickups", p.ID, "/status")
	if err != nil {
		return p, err
	}
	updated, err := gateway.DoKey[pickups.Pickup](ctx, s.client, http.MethodPatch, path, "pickup", update)
	if err != nil {
		return p, fmt.Errorf("[AdminService UpdatePickupStatus] %w", err)
	}
	return updated, nil
}
