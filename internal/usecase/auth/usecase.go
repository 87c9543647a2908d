package auth

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/domain/member"
	memberuc "library-backend/internal/usecase/member"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID uint64, role string, now time.Time) (token string, expiresAt time.Time, err error)
}

type Registrar interface {
	Register(ctx context.Context, in memberuc.RegisterInput) (*member.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uint64    `json:"user_id"`
	Role      string    `json:"role"`
}

// DefaultUsers are the demo accounts created by EnsureDefaults.
var DefaultUsers = []memberuc.RegisterInput{
	{Username: "librarian", Password: "admin123", FullName: "Head Librarian", Role: member.RoleLibrarian},
	{Username: "member", Password: "member123", FullName: "Regular Member", Role: member.RoleMember},
}

type Usecase struct {
	members   member.Repository
	registrar Registrar
	tokens    TokenIssuer
}

func NewUsecase(members member.Repository, registrar Registrar, tokens TokenIssuer) *Usecase {
	return &Usecase{members: members, registrar: registrar, tokens: tokens}
}

// EnsureRoles creates the LIBRARIAN and MEMBER roles when missing.
func (u *Usecase) EnsureRoles(ctx context.Context) error {
	for _, name := range []string{member.RoleLibrarian, member.RoleMember} {
		if _, err := u.members.EnsureRole(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDefaults creates the roles and the demo accounts. Safe to call on
// every start.
func (u *Usecase) EnsureDefaults(ctx context.Context) error {
	if err := u.EnsureRoles(ctx); err != nil {
		return err
	}
	for _, in := range DefaultUsers {
		exists, err := u.registrar.UsernameExists(ctx, in.Username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := u.registrar.Register(ctx, in); err != nil && !errors.Is(err, member.ErrUsernameTaken) {
			return err
		}
	}
	return nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput, now time.Time) (*LoginResult, error) {
	creds, err := u.members.GetCredentials(ctx, in.Username)
	if errors.Is(err, member.ErrNotFound) {
		return nil, member.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(in.Password)); err != nil {
		return nil, member.ErrInvalidCredentials
	}

	token, exp, err := u.tokens.Issue(creds.UserID, creds.Role, now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, UserID: creds.UserID, Role: creds.Role}, nil
}
