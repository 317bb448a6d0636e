package dto

import (
	"strings"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

// -------- Profile --------

// ProfileRequest is a full replacement: an omitted field clears the stored value.
type ProfileRequest struct {
	AgeGroup *string `json:"age_group" validate:"omitempty,max=64"`
	Gender   *string `json:"gender" validate:"omitempty,max=64"`
	Language *string `json:"language" validate:"omitempty,max=64"`
}

// Normalize trims values and turns blank ones into "unset".
func (r *ProfileRequest) Normalize() {
	r.AgeGroup = blankToNil(r.AgeGroup)
	r.Gender = blankToNil(r.Gender)
	r.Language = blankToNil(r.Language)
}

func (r *ProfileRequest) Validate() error {
	return validateStruct(r)
}

// ProfileResponse always carries all three keys; unset ones are null.
type ProfileResponse struct {
	AgeGroup *string `json:"age_group"`
	Gender   *string `json:"gender"`
	Language *string `json:"language"`
}

// EmptyProfile renders as {}.
type EmptyProfile struct{}

// ProfileView maps the service result to its wire shape.
func ProfileView(p *domain.Profile) any {
	if p == nil {
		return EmptyProfile{}
	}
	return ProfileResponse{
		AgeGroup: p.AgeGroup,
		Gender:   p.Gender,
		Language: p.Language,
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
