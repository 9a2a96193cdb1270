package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-club-server/accounts"
	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

// FakeAccountRepo is an in-memory credential store. Err, when set, is returned
// from every call to simulate an unreachable store.
type FakeAccountRepo struct {
	accounts map[int64]*accounts.Account
	emailIDs map[string]int64
	nextID   int64
	lock     sync.RWMutex

	Err error
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[int64]*accounts.Account),
		emailIDs: make(map[string]int64),
	}
}

func (r *FakeAccountRepo) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	id, ok := r.emailIDs[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a := *r.accounts[id]
	return &a, nil
}

func (r *FakeAccountRepo) GetByID(_ context.Context, id int64) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *FakeAccountRepo) HasSuperadmin(_ context.Context) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, a := range r.accounts {
		if a.IsSuperadmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeAccountRepo) CreateSuperadmin(_ context.Context, email, passwordHash string) (*accounts.Account, error) {
	return r.insert(&accounts.Account{Email: email, PasswordHash: passwordHash, IsSuperadmin: true})
}

func (r *FakeAccountRepo) CreateAdmin(_ context.Context, email, passwordHash, clubID string) (*accounts.Account, error) {
	return r.insert(&accounts.Account{Email: email, PasswordHash: passwordHash, ClubID: clubID})
}

// Insert stores a fully formed account, letting tests seed orphaned admins
func (r *FakeAccountRepo) Insert(a *accounts.Account) (*accounts.Account, error) {
	return r.insert(a)
}

func (r *FakeAccountRepo) insert(a *accounts.Account) (*accounts.Account, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	key := strings.ToLower(a.Email)
	if _, ok := r.emailIDs[key]; ok {
		return nil, apperrors.ErrEmailTaken
	}
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now().UTC()
	stored := *a
	r.accounts[a.ID] = &stored
	r.emailIDs[key] = a.ID
	return a, nil
}

func (r *FakeAccountRepo) ListAdmins(_ context.Context) ([]*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]*accounts.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		cp := *a
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *FakeAccountRepo) DeleteAdmin(_ context.Context, id int64) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.accounts[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if a.IsSuperadmin {
		return apperrors.ErrSuperadminProtected
	}
	delete(r.emailIDs, strings.ToLower(a.Email))
	delete(r.accounts, id)
	return nil
}

// Count returns the number of stored accounts
func (r *FakeAccountRepo) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.accounts)
}
