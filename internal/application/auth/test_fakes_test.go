package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr  error
	createErr      error
	getIdentityErr error

	createdProfiles []string // user ids
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]domain.User{}}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) CreateWithEmptyProfile(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	}
	f.byEmail[u.Email] = u
	f.createdProfiles = append(f.createdProfiles, u.ID)
	return u, nil
}

func (f *fakeUserRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	if f.getIdentityErr != nil {
		return domain.Identity{}, f.getIdentityErr
	}
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	return u.Identity(), nil
}

func (f *fakeUserRepo) seed(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[u.Email] = u
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

// fakeTokens encodes tokens as "jwt(<email>)".
type fakeTokens struct {
	signFn   func(email string, ttl time.Duration) (string, error)
	decodeFn func(token string) (string, error)

	lastTTL time.Duration
}

func (s *fakeTokens) SignAccessToken(email string, ttl time.Duration) (string, error) {
	s.lastTTL = ttl
	if s.signFn != nil {
		return s.signFn(email, ttl)
	}
	return fmt.Sprintf("jwt(%s)", email), nil
}

func (s *fakeTokens) DecodeAccessToken(token string) (string, error) {
	if s.decodeFn != nil {
		return s.decodeFn(token)
	}
	if !strings.HasPrefix(token, "jwt(") || !strings.HasSuffix(token, ")") {
		return "", domain.ErrTokenInvalid()
	}
	return strings.TrimSuffix(strings.TrimPrefix(token, "jwt("), ")"), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []UserRegisteredEvent
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type hookCall struct{ name, status string }

type svcHarness struct {
	svc    *Service
	users  *fakeUserRepo
	hasher *fakeHasher
	tokens *fakeTokens
	pub    *fakePublisher
	hooks  *[]hookCall
}

func newSvcForTest(t *testing.T) svcHarness {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	tokens := &fakeTokens{}
	pub := &fakePublisher{}
	hooks := &[]hookCall{}

	svc := NewService(users, users, hasher, tokens, pub, Config{AccessTTL: 24 * time.Hour}).
		WithEventHook(func(name, status string) {
			*hooks = append(*hooks, hookCall{name, status})
		})

	return svcHarness{svc: svc, users: users, hasher: hasher, tokens: tokens, pub: pub, hooks: hooks}
}

/*
Small assertions
*/

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
