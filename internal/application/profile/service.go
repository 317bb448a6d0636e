package profile

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// MaxFieldLen bounds each category value.
const MaxFieldLen = 64

type Service struct {
	profiles ProfileRepo
	now      func() time.Time
	onUpdate func()
}

func NewService(profiles ProfileRepo) *Service {
	return &Service{
		profiles: profiles,
		now:      time.Now,
		onUpdate: func() {},
	}
}

// WithUpdateHook registers a callback invoked after every successful upsert.
func (s *Service) WithUpdateHook(fn func()) *Service {
	if fn != nil {
		s.onUpdate = fn
	}
	return s
}

// Get returns the caller's profile, or nil when there is none.
// A stored row whose three categories are all unset is reported as nil too,
// so a fresh account and a cleared profile look the same to clients.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if domain.Is(err, "profile_not_found") {
			return nil, nil
		}
		return nil, err
	}
	if p.IsEmpty() {
		return nil, nil
	}
	return &p, nil
}

// Upsert replaces all three categories. A nil argument clears that category.
func (s *Service) Upsert(ctx context.Context, userID string, ageGroup, gender, language *string) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	fields := []struct {
		name  string
		value *string
	}{
		{"age_group", ageGroup},
		{"gender", gender},
		{"language", language},
	}
	for _, f := range fields {
		if f.value != nil && utf8.RuneCountInString(*f.value) > MaxFieldLen {
			return domain.ErrInvalidField(f.name, fmt.Sprintf("must be at most %d characters", MaxFieldLen))
		}
	}

	p, err := s.profiles.Upsert(ctx, domain.Profile{
		UserID:    userID,
		AgeGroup:  ageGroup,
		Gender:    gender,
		Language:  language,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	s.onUpdate()
	logger.WithCtx(ctx).Info().
		Str("profile_id", p.ID).
		Msg("profile_updated")
	return nil
}
