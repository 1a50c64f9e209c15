package users

import (
	"fmt"
	"time"
	"unicode"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Role identifies which dashboards and actions an account may use
type Role string

const (
	RoleUser      Role = "user"      // Household scheduling pickups
	RoleCollector Role = "collector" // Collects scheduled pickups
	RoleAdmin     Role = "admin"     // Manages users, collectors and all pickups
)

// Roles lists the recognised roles in login dispatch order.
var Roles = []Role{RoleUser, RoleCollector, RoleAdmin}

// ParseRole accepts exactly the recognised role names.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", errors.Wrapf(errors.ErrInvalidRole, "%q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCollector, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type AccountStatus string

const (
	StatusActive   AccountStatus = "Active"
	StatusInactive AccountStatus = "Inactive"
	StatusPending  AccountStatus = "Pending" // Collectors awaiting admin approval
)

// Profile is the account record the backend returns on login and in admin listings.
type Profile struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name,omitempty"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Address     string        `json:"address,omitempty"`
	Role        Role          `json:"role,omitempty"`
	Status      AccountStatus `json:"status,omitempty"`
	DateJoined  time.Time     `json:"date_joined,omitempty"`
	VehicleType string        `json:"vehicle_type,omitempty"` // Collectors only
	ServiceArea string        `json:"service_area,omitempty"` // Collectors only
	Approved    bool          `json:"approved,omitempty"`     // Collectors only
}

func (p *Profile) IsCollector() bool {
	return p.Role == RoleCollector
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", errors.ErrWeakPassword)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter: %w", errors.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter: %w", errors.ErrWeakPassword)
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number: %w", errors.ErrWeakPassword)
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
