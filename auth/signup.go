package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/users"
)

// SignupForm is the registration form shared by households and collectors
type SignupForm struct {
	Name            string
	Email           string
	Phone           string
	Address         string
	Password        string
	ConfirmPassword string
	VehicleType     string // Collectors only
	ServiceArea     string // Collectors only
}

type formField struct {
	name  string
	value string
}

func (f SignupForm) Validate(role users.Role) error {
	fields := []formField{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
	}
	if role == users.RoleCollector {
		fields = append(fields, formField{"vehicle type", f.VehicleType}, formField{"service area", f.ServiceArea})
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required: %w", field.name, errors.ErrInvalidSignupForm)
		}
	}

	email := strings.TrimSpace(f.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("email address is invalid: %w", errors.ErrInvalidSignupForm)
	}
	if f.Password != f.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", errors.ErrInvalidSignupForm)
	}
	return users.ValidatePasswordStrength(f.Password)
}

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicle_type,omitempty"`
	ServiceArea string `json:"service_area,omitempty"`
}

func (f SignupForm) request() signupRequest {
	return signupRequest{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:       strings.TrimSpace(f.Phone),
		Address:     strings.TrimSpace(f.Address),
		Password:    f.Password,
		VehicleType: strings.TrimSpace(f.VehicleType),
		ServiceArea: strings.TrimSpace(f.ServiceArea),
	}
}
