package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

type fakeSeederHasher struct {
	err   error
	calls int
}

func (h *fakeSeederHasher) Hash(pw string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "HASH(" + pw + ")", nil
}

type fakeSeederRepo struct {
	mu      sync.Mutex
	created []domain.User
	err     error
}

func (r *fakeSeederRepo) CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.User{}, r.err
	}
	r.created = append(r.created, u)
	return u, nil
}

func TestSeedDemoUser_CreatesHashedUser(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederRepo{}
	SeedDemoUser(context.Background(), repo, &fakeSeederHasher{})

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 user, got %d", len(repo.created))
	}
	u := repo.created[0]
	if u.Email != DemoEmail || u.PasswordHash != "HASH("+DemoPassword+")" || u.ID == "" {
		t.Fatalf("unexpected seeded user: %+v", u)
	}
}

func TestSeedDemoUser_HashFails_SkipsCreate(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederRepo{}
	SeedDemoUser(context.Background(), repo, &fakeSeederHasher{err: errors.New("boom")})

	if len(repo.created) != 0 {
		t.Fatalf("expected no users, got %d", len(repo.created))
	}
}

func TestSeedDemoUser_AlreadySeeded_NoPanic(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederRepo{err: domain.ErrEmailAlreadyRegistered()}
	SeedDemoUser(context.Background(), repo, &fakeSeederHasher{})
}
