package sessions

// Storage is raw key/value persistence, the equivalent of browser local storage.
type Storage interface {
	// Get returns the value stored under key and whether it exists
	Get(key string) (string, bool, error)

	// SetAll writes every entry in one operation
	SetAll(values map[string]string) error

	// Remove deletes the keys. Missing keys are not an error.
	Remove(keys ...string) error
}

// Repo is the session store the gateway, guard and auth flow depend on.
type Repo interface {
	// Get returns the current session, or ErrSessionNotFound when any of token, user or role is absent
	Get() (*Session, error)

	// Set replaces the whole session
	Set(session Session) error

	// Clear removes the whole session. Clearing an empty store is a no-op.
	Clear() error
}
