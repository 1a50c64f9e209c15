package fakeuserrepo

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.Account
	emailIds map[string]string // role+email to account id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.Account),
		emailIds: make(map[string]string),
	}
}

func emailKey(role users.Role, email string) string {
	return string(role) + "|" + email
}

func (ur *FakeUserRepo) Upsert(account *users.Account) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	cp := *account
	ur.users[account.ID] = &cp
	ur.emailIds[emailKey(account.Role, account.Email)] = account.ID
	return nil
}

func (ur *FakeUserRepo) Delete(id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	account, ok := ur.users[id]
	if !ok {
		return errors.ErrNotFound
	}
	delete(ur.emailIds, emailKey(account.Role, account.Email))
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) GetByEmail(role users.Role, email string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[emailKey(role, email)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *ur.users[id]
	return &cp, nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	account, ok := ur.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *account
	return &cp, nil
}

func (ur *FakeUserRepo) List(role users.Role) ([]*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.Account, 0)
	for _, v := range ur.users {
		if role != "" && v.Role != role {
			continue
		}
		cp := *v
		list = append(list, &cp)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (ur *FakeUserRepo) SetApproved(id string, approved bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	account, ok := ur.users[id]
	if !ok {
		return errors.ErrNotFound
	}
	account.Approved = approved
	if approved {
		account.Status = users.StatusActive
	}
	return nil
}
