// Package models contains the row types persisted by the repositories and
// the patch structs used for partial updates.
package models

import "time"

// Role of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a row in the users table.
//
// Password holds the bcrypt hash and is never serialized. The users
// repository hashes plaintext passwords at write time, so a User travelling
// towards Create/Update may briefly carry a plaintext value in this field.
type User struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Password               string     `json:"-"`
	IsEmailVerified        bool       `json:"isEmailVerified"`
	EmailVerificationToken *string    `json:"-"`
	LastLoginAt            *time.Time `json:"lastLoginAt,omitempty"`
	Role                   Role       `json:"role"`
	Position               []string   `json:"position,omitempty"`
	Team                   []string   `json:"team,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// Public returns a copy safe to hand to clients: the password hash and the
// pending verification token are stripped.
func (u *User) Public() *User {
	out := *u
	out.Password = ""
	out.EmailVerificationToken = nil
	return &out
}

// UserPatch describes a partial update. Only non-nil fields are applied.
type UserPatch struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	Role     *Role     `json:"role"`
	Position *[]string `json:"position"`
	Team     *[]string `json:"team"`
}

// Apply copies the set fields of the patch onto the user.
func (p *UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Team != nil {
		u.Team = *p.Team
	}
}
