package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"myvet/internal/domain/accounts"
)

type accountRepo struct {
	mu      sync.RWMutex
	byID    map[string]accounts.User
	byEmail map[string]string
	owners  map[string]accounts.OwnerProfile
	vets    map[string]accounts.VetProfile
}

func NewAccountRepo() accounts.Repository {
	return &accountRepo{
		byID:    make(map[string]accounts.User),
		byEmail: make(map[string]string),
		owners:  make(map[string]accounts.OwnerProfile),
		vets:    make(map[string]accounts.VetProfile),
	}
}

func (r *accountRepo) CreateUser(ctx context.Context, u accounts.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	key := strings.ToLower(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return accounts.ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return nil
}

func (r *accountRepo) UpdateUser(ctx context.Context, u accounts.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID]
	if !ok {
		return accounts.ErrNotFound
	}
	if !strings.EqualFold(prev.Email, u.Email) {
		key := strings.ToLower(u.Email)
		if _, taken := r.byEmail[key]; taken {
			return accounts.ErrEmailTaken
		}
		delete(r.byEmail, strings.ToLower(prev.Email))
		r.byEmail[key] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

func (r *accountRepo) GetUserByID(ctx context.Context, id string) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}

func (r *accountRepo) GetUserByEmail(ctx context.Context, email string) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *accountRepo) ListUsersByRole(ctx context.Context, role string) ([]accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accounts.User, 0)
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *accountRepo) UpsertOwnerProfile(ctx context.Context, p accounts.OwnerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.UserID]; !ok {
		return accounts.ErrNotFound
	}
	r.owners[p.UserID] = p
	return nil
}

func (r *accountRepo) GetOwnerProfile(ctx context.Context, userID string) (accounts.OwnerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.owners[userID]
	if !ok {
		return accounts.OwnerProfile{}, accounts.ErrNotFound
	}
	return p, nil
}

func (r *accountRepo) UpsertVetProfile(ctx context.Context, p accounts.VetProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.UserID]; !ok {
		return accounts.ErrNotFound
	}
	r.vets[p.UserID] = p
	return nil
}

func (r *accountRepo) GetVetProfile(ctx context.Context, userID string) (accounts.VetProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.vets[userID]
	if !ok {
		return accounts.VetProfile{}, accounts.ErrNotFound
	}
	return p, nil
}
