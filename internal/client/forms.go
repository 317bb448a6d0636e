package client

import (
	"fmt"
	"regexp"

	"github.com/wellbot/wellbot-backend/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Options offered by the profile form.
var (
	AgeGroupOptions = domain.AgeGroupOptions
	GenderOptions   = domain.GenderOptions
	LanguageOptions = domain.LanguageOptions
)

// IsValidEmail is the advisory email syntax check run before a request.
// The server performs its own validation.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f RegisterForm) Validate() error {
	switch {
	case f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "":
		return ErrMissingFields
	case !IsValidEmail(f.Email):
		return ErrInvalidEmailFormat
	case f.Password != f.ConfirmPassword:
		return ErrPasswordMismatch
	}
	return nil
}

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	switch {
	case f.Email == "" || f.Password == "":
		return ErrMissingFields
	case !IsValidEmail(f.Email):
		return ErrInvalidEmailFormat
	}
	return nil
}

// Profile mirrors the /profile body. Nil fields are unset.
type Profile struct {
	AgeGroup *string `json:"age_group"`
	Gender   *string `json:"gender"`
	Language *string `json:"language"`
}

// ProfileForm holds the selections of the profile editor.
type ProfileForm struct {
	AgeGroup string
	Gender   string
	Language string
}

// Validate requires an age group. Every non-blank selection must come from
// the offered options; the server itself accepts any short string.
func (f ProfileForm) Validate() error {
	if f.AgeGroup == "" {
		return ErrAgeGroupRequired
	}
	for _, sel := range []struct {
		value string
		opts  []string
	}{
		{f.AgeGroup, AgeGroupOptions},
		{f.Gender, GenderOptions},
		{f.Language, LanguageOptions},
	} {
		if sel.value != "" && !domain.IsKnownOption(sel.opts, sel.value) {
			return fmt.Errorf("%w: %q", ErrUnknownOption, sel.value)
		}
	}
	return nil
}

func (f ProfileForm) profile() Profile {
	return Profile{
		AgeGroup: optional(f.AgeGroup),
		Gender:   optional(f.Gender),
		Language: optional(f.Language),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
