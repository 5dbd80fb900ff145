package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Measurement limits. Anything larger is a typo, not a person.
const (
	MaxHeightCm = 300
	MaxWeightKg = 500
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// DefaultName is shown for profiles created at first login.
const DefaultName = "Fitness Enthusiast"

// DefaultAdminPhones is the built-in admin allow-list.
var DefaultAdminPhones = []string{"+91 8309285636", "1234567890"}

// Domain errors
var (
	ErrInvalidInput = errors.New("invalid profile input")
	ErrInvalidRole  = errors.New("role must be one of: admin, member")
	ErrPhoneTaken   = errors.New("phone number already registered")
)

// Profile holds state for the UserProfile concept.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	HeightCm   float64   `json:"height"`
	WeightKg   float64   `json:"weight"`
	Attendance []string  `json:"attendance"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, an ErrInvalidInput-wrapped error otherwise
// INVARIANT: HeightCm/WeightKg may be zero (not recorded), otherwise within the measurement limits
func (p *Profile) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("%w: phone cannot be empty", ErrInvalidInput)
	}
	if p.Role != RoleAdmin && p.Role != RoleMember {
		return ErrInvalidRole
	}
	if p.HeightCm != 0 && !inRange(p.HeightCm, MaxHeightCm) {
		return fmt.Errorf("%w: height must be between 0 and %d cm", ErrInvalidInput, MaxHeightCm)
	}
	if p.WeightKg != 0 && !inRange(p.WeightKg, MaxWeightKg) {
		return fmt.Errorf("%w: weight must be between 0 and %d kg", ErrInvalidInput, MaxWeightKg)
	}
	return nil
}

// HasMeasurements reports whether both height and weight are recorded.
func (p *Profile) HasMeasurements() bool {
	return p.HeightCm > 0 && p.WeightKg > 0
}

// CanAccessAdmin is the single admin-gating predicate.
// INVARIANT: Profile fields are not mutated
func CanAccessAdmin(p Profile) bool {
	return p.Role == RoleAdmin
}

// Update carries optional field changes. Nil fields are left untouched.
type Update struct {
	Name     *string
	Phone    *string
	HeightCm *float64
	WeightKg *float64
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.HeightCm == nil && u.WeightKg == nil
}

// Apply returns a copy of p with the update applied.
// PRE: none
// POST: Returns the updated copy, or an error with p untouched
// INVARIANT: a measurement update must be > 0
func (u Update) Apply(p Profile) (Profile, error) {
	next := p
	next.Attendance = append([]string(nil), p.Attendance...)
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if err := validateName(name); err != nil {
			return p, err
		}
		next.Name = name
	}
	if u.Phone != nil {
		phone := strings.TrimSpace(*u.Phone)
		if phone == "" {
			return p, fmt.Errorf("%w: phone cannot be empty", ErrInvalidInput)
		}
		next.Phone = phone
	}
	if u.HeightCm != nil {
		if !inRange(*u.HeightCm, MaxHeightCm) {
			return p, fmt.Errorf("%w: height must be greater than zero and at most %d cm", ErrInvalidInput, MaxHeightCm)
		}
		next.HeightCm = *u.HeightCm
	}
	if u.WeightKg != nil {
		if !inRange(*u.WeightKg, MaxWeightKg) {
			return p, fmt.Errorf("%w: weight must be greater than zero and at most %d kg", ErrInvalidInput, MaxWeightKg)
		}
		next.WeightKg = *u.WeightKg
	}
	return next, nil
}

// RoleForPhone resolves the role for a first login.
// Numbers are compared after dropping spaces, dashes and parentheses.
func RoleForPhone(phone string, adminPhones []string) string {
	key := NormalizePhone(phone)
	if key == "" {
		return RoleMember
	}
	for _, admin := range adminPhones {
		if NormalizePhone(admin) == key {
			return RoleAdmin
		}
	}
	return RoleMember
}

// NormalizePhone strips formatting characters from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name cannot exceed %d characters", ErrInvalidInput, MaxNameLength)
	}
	return nil
}

// inRange is false for NaN.
func inRange(v float64, limit int) bool {
	return v > 0 && v <= float64(limit)
}
