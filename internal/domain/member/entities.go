package member

import (
	"errors"
	"time"
)

const (
	RoleLibrarian = "LIBRARIAN"
	RoleMember    = "MEMBER"
)

var (
	ErrNotFound           = errors.New("member not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidInput       = errors.New("invalid member input")
)

// ValidRole reports whether name is one of the known role names.
func ValidRole(name string) bool { return name == RoleLibrarian || name == RoleMember }

// Table: roles
type Role struct {
	ID   uint64 `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;size:32;not null;uniqueIndex"`
}

func (Role) TableName() string { return "roles" }

// Table: users
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	RoleID       uint64    `gorm:"column:role_id;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

// Table: members. ID equals users.id.
type Member struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement:false;column:id"`
	FullName string `gorm:"column:full_name;not null"`
}

func (Member) TableName() string { return "members" }

// Profile is the joined users/members/roles view.
type Profile struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (p *Profile) IsLibrarian() bool { return p.Role == RoleLibrarian }

// Credentials is what login needs to verify a password.
type Credentials struct {
	UserID       uint64
	PasswordHash string
	Role         string
}
