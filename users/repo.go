package users

// Account is a stored credential plus the profile handed out on login.
type Account struct {
	Profile
	PasswordHash string `json:"-"`
}

type UserRepo interface {
	Upsert(account *Account) error
	Delete(id string) error
	GetByEmail(role Role, email string) (*Account, error)
	GetByID(id string) (*Account, error)
	List(role Role) ([]*Account, error)
	SetApproved(id string, approved bool) error
}
