package identity

import (
	"github.com/am3lue/ProjectManagementSystem/internal"
)

// SignUpDTO is the transport shape of the registration form.
type SignUpDTO struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	TermsAgreed     bool   `json:"termsAgreed"`
}

// Validate checks the sign-up rules in their fixed order and reports the
// first failure. Order matters: required fields, then password match,
// then terms.
func (d SignUpDTO) Validate() error {
	if d.FirstName == "" {
		return internal.NewValidationError("first name is required")
	}
	if d.LastName == "" {
		return internal.NewValidationError("last name is required")
	}
	if d.Email == "" {
		return internal.NewValidationError("email is required")
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required")
	}
	if d.Password != d.ConfirmPassword {
		return internal.NewValidationError("Passwords do not match")
	}
	if !d.TermsAgreed {
		return internal.NewValidationError("You must agree to the Terms of Service and Privacy Policy")
	}
	return nil
}

type SignInDTO struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (d SignInDTO) Validate() error {
	if d.Email == "" || d.Password == "" {
		return internal.NewValidationError("Please fill in all fields")
	}
	return nil
}

type ResetRequestDTO struct {
	Email string `json:"email"`
}

func (d ResetRequestDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("Please enter your email address")
	}
	return nil
}
