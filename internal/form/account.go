package form

import (
	"strings"

	"github.com/five82/reel/internal/api"
)

// Login is the sign-in form.
type Login struct {
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,min=6"`
}

var loginMessages = messages{
	"email": {
		"required":   "Email is required",
		"emailshape": "Please enter a valid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
}

// Login validates the sign-in form. The email is judged after trimming.
func (val *Validator) Login(in Login) Errors {
	in.Email = strings.TrimSpace(in.Email)
	return val.check(in, loginMessages)
}

// Request builds the login body.
func (l Login) Request() api.LoginRequest {
	return api.LoginRequest{Email: strings.TrimSpace(l.Email), Password: l.Password}
}

// Signup is the registration form.
type Signup struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,emailshape"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	PhoneNumber     string `json:"phoneNumber" validate:"omitempty,phone"`
	Address         string `json:"address"`
}

var signupMessages = messages{
	"fullName":        {"required": "Full name is required"},
	"email":           loginMessages["email"],
	"password":        loginMessages["password"],
	"confirmPassword": {"eqfield": "Passwords do not match"},
	"phoneNumber":     {"phone": "Please enter a valid phone number"},
}

// Signup validates the registration form.
func (val *Validator) Signup(in Signup) Errors {
	in = in.trimmed()
	return val.check(in, signupMessages)
}

func (s Signup) trimmed() Signup {
	s.FullName = strings.TrimSpace(s.FullName)
	s.Email = strings.TrimSpace(s.Email)
	s.PhoneNumber = strings.TrimSpace(s.PhoneNumber)
	s.Address = strings.TrimSpace(s.Address)
	return s
}

// Request builds the registration body.
func (s Signup) Request() api.RegistrationRequest {
	s = s.trimmed()
	return api.RegistrationRequest{
		Email:       s.Email,
		Password:    s.Password,
		FullName:    s.FullName,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
	}
}

// Profile is the editable part of an account.
type Profile struct {
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	Address     string `json:"address"`
}

var profileMessages = messages{
	"fullName":    signupMessages["fullName"],
	"phoneNumber": signupMessages["phoneNumber"],
}

// ProfileFromUser pre-fills the form.
func ProfileFromUser(u api.User) Profile {
	return Profile{FullName: u.FullName, PhoneNumber: u.PhoneNumber, Address: u.Address}
}

// Profile validates the profile form.
func (val *Validator) Profile(in Profile) Errors {
	u := in.Update()
	return val.check(Profile{FullName: u.FullName, PhoneNumber: u.PhoneNumber, Address: u.Address}, profileMessages)
}

// Update builds the PUT body.
func (p Profile) Update() api.ProfileUpdate {
	return api.ProfileUpdate{
		FullName:    strings.TrimSpace(p.FullName),
		PhoneNumber: strings.TrimSpace(p.PhoneNumber),
		Address:     strings.TrimSpace(p.Address),
	}
}
