package fakepickuprepo

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/pickups"
)

var _ pickups.Repo = (*FakePickupRepo)(nil)

type FakePickupRepo struct {
	pickups map[string]*pickups.Pickup
	lock    sync.RWMutex
}

func NewFakePickupRepo() pickups.Repo {
	return &FakePickupRepo{
		pickups: make(map[string]*pickups.Pickup),
	}
}

func (pr *FakePickupRepo) Upsert(pickup *pickups.Pickup) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if pickup.ID == "" {
		pickup.ID = uuid.New().String()
	}
	cp := *pickup
	pr.pickups[pickup.ID] = &cp
	return nil
}

func (pr *FakePickupRepo) Get(id string) (*pickups.Pickup, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.pickups[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (pr *FakePickupRepo) ListByUser(userID string) ([]*pickups.Pickup, error) {
	return pr.filter(func(p *pickups.Pickup) bool { return p.UserID == userID }), nil
}

// ListForCollector returns pickups assigned to the collector plus unassigned pending ones.
func (pr *FakePickupRepo) ListForCollector(collectorID string) ([]*pickups.Pickup, error) {
	return pr.filter(func(p *pickups.Pickup) bool {
		return p.CollectorID == collectorID || (p.CollectorID == "" && p.Status == pickups.StatusPending)
	}), nil
}

func (pr *FakePickupRepo) List() ([]*pickups.Pickup, error) {
	return pr.filter(func(*pickups.Pickup) bool { return true }), nil
}

func (pr *FakePickupRepo) filter(keep func(*pickups.Pickup) bool) []*pickups.Pickup {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*pickups.Pickup, 0)
	for _, p := range pr.pickups {
		if keep(p) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}
