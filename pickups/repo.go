package pickups

type Repo interface {
	Upsert(pickup *Pickup) error
	Get(id string) (*Pickup, error)
	ListByUser(userID string) ([]*Pickup, error)
	ListForCollector(collectorID string) ([]*Pickup, error)
	List() ([]*Pickup, error)
}
