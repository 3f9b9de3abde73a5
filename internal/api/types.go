package api

import "strings"

// User is an account as returned by the auth and user endpoints.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Admin       bool   `json:"admin"`
}

// DisplayName prefers the full name and falls back to the email.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Email
}

// RoleLabel is "Admin" or "User".
func (u User) RoleLabel() string {
	if u.Admin {
		return "Admin"
	}
	return "User"
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationRequest is the POST /auth/register body.
type RegistrationRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ProfileUpdate is the PUT /users/{id} body.
type ProfileUpdate struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Apply returns u with the editable profile fields replaced.
func (p ProfileUpdate) Apply(u User) User {
	u.FullName = p.FullName
	u.PhoneNumber = p.PhoneNumber
	u.Address = p.Address
	return u
}

// RatingRequest is the POST /movies/{id}/ratings body.
type RatingRequest struct {
	UserID int64   `json:"userId"`
	Rating float64 `json:"rating"`
}

// Rating is a stored rating.
type Rating struct {
	ID      int64   `json:"id,omitempty"`
	MovieID int64   `json:"movieId,omitempty"`
	UserID  int64   `json:"userId,omitempty"`
	Rating  float64 `json:"rating"`
}

// AdminRentalQuery filters GET /admin/rentals.
type AdminRentalQuery struct {
	Email  string
	Status string
}

// Upload is a file to send to POST /admin/images.
type Upload struct {
	Filename string
	Data     []byte
}

// ImageInfo describes a fetched poster.
type ImageInfo struct {
	URL  string
	MIME string
	Size int
}

type imageUploadResponse struct {
	ImageID string `json:"imageId"`
}
