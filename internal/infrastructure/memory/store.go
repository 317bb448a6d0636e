package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// Store keeps users and profiles in process memory. Both live behind one
// mutex so registration stays atomic. Used for local development and tests.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]domain.User
	byEmail  map[string]string // email -> userID
	profiles map[string]domain.Profile
}

func NewStore() *Store {
	return &Store{
		byID:     make(map[string]domain.User),
		byEmail:  make(map[string]string),
		profiles: make(map[string]domain.Profile),
	}
}

// ---------- auth.UserRepo ----------

func (s *Store) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.byID[id], nil
}

func (s *Store) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	return u.Identity(), nil
}

func (s *Store) CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.profiles[u.ID] = domain.Profile{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		UpdatedAt: u.CreatedAt,
	}
	return u, nil
}

// ---------- profile.ProfileRepo ----------

func (s *Store) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound()
	}
	return p, nil
}

func (s *Store) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.UserID]; !ok {
		return domain.Profile{}, domain.ErrUserNotFound()
	}

	if old, ok := s.profiles[p.UserID]; ok {
		p.ID = old.ID
	} else if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.AgeGroup = clone(p.AgeGroup)
	p.Gender = clone(p.Gender)
	p.Language = clone(p.Language)

	s.profiles[p.UserID] = p
	return p, nil
}

// Ping satisfies the readiness check.
func (s *Store) Ping(ctx context.Context) error { return nil }

func clone(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
