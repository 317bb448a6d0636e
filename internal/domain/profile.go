package domain

import "time"

// Profile holds the optional demographic categories of one user.
// A nil field means "unset".
type Profile struct {
	ID        string
	UserID    string
	AgeGroup  *string
	Gender    *string
	Language  *string
	UpdatedAt time.Time
}

// IsEmpty reports whether no category is set. Blank strings count as unset.
func (p Profile) IsEmpty() bool {
	return isUnset(p.AgeGroup) && isUnset(p.Gender) && isUnset(p.Language)
}

func isUnset(s *string) bool {
	return s == nil || *s == ""
}

// Recognized category values. Advisory only: the server stores whatever the
// owner sends, clients use these to populate their forms.
var (
	AgeGroupOptions = []string{"Below 18", "18-25", "26-35", "36-45", "46-60", "Above 60"}
	GenderOptions   = []string{"Male", "Female", "Other"}
	LanguageOptions = []string{"English", "Hindi"}
)

// IsKnownOption reports whether v is one of opts.
func IsKnownOption(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
