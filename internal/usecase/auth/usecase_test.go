package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-backend/internal/domain/member"
	"library-backend/internal/testutil/membermock"
	memberuc "library-backend/internal/usecase/member"

	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct {
	gotUser uint64
	gotRole string
}

func (f *fakeIssuer) Issue(userID uint64, role string, now time.Time) (string, time.Time, error) {
	f.gotUser, f.gotRole = userID, role
	return "signed", now.Add(time.Hour), nil
}

type fakeRegistrar struct {
	existing   map[string]bool
	registered []string
}

func (f *fakeRegistrar) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.existing[username], nil
}

func (f *fakeRegistrar) Register(_ context.Context, in memberuc.RegisterInput) (*member.Profile, error) {
	f.registered = append(f.registered, in.Username+"/"+in.Role)
	return &member.Profile{Username: in.Username, Role: in.Role}, nil
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestEnsureDefaults_CreatesMissingOnly(t *testing.T) {
	var roles []string
	repo := &membermock.Repo{
		EnsureRoleFn: func(_ context.Context, name string) (*member.Role, error) {
			roles = append(roles, name)
			return &member.Role{Name: name}, nil
		},
	}
	reg := &fakeRegistrar{existing: map[string]bool{"librarian": true}}

	if err := NewUsecase(repo, reg, &fakeIssuer{}).EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	if len(roles) != 2 || roles[0] != member.RoleLibrarian || roles[1] != member.RoleMember {
		t.Fatalf("roles ensured = %v", roles)
	}
	if len(reg.registered) != 1 || reg.registered[0] != "member/MEMBER" {
		t.Fatalf("registered = %v", reg.registered)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := &membermock.Repo{
		GetCredentialsFn: func(_ context.Context, username string) (*member.Credentials, error) {
			return &member.Credentials{UserID: 9, PasswordHash: hashed(t, "admin123"), Role: member.RoleLibrarian}, nil
		},
	}
	iss := &fakeIssuer{}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	res, err := NewUsecase(repo, &fakeRegistrar{}, iss).Login(context.Background(), LoginInput{Username: "librarian", Password: "admin123"}, now)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "signed" || res.UserID != 9 || res.Role != member.RoleLibrarian || !res.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if iss.gotUser != 9 || iss.gotRole != member.RoleLibrarian {
		t.Fatalf("issuer got %d/%s", iss.gotUser, iss.gotRole)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := &membermock.Repo{
		GetCredentialsFn: func(_ context.Context, username string) (*member.Credentials, error) {
			if username == "ghost" {
				return nil, member.ErrNotFound
			}
			return &member.Credentials{UserID: 1, PasswordHash: hashed(t, "right"), Role: member.RoleMember}, nil
		},
	}
	uc := NewUsecase(repo, &fakeRegistrar{}, &fakeIssuer{})

	for _, in := range []LoginInput{{Username: "ghost", Password: "x"}, {Username: "member", Password: "wrong"}} {
		if _, err := uc.Login(context.Background(), in, time.Now()); !errors.Is(err, member.ErrInvalidCredentials) {
			t.Errorf("Login(%s): want ErrInvalidCredentials, got %v", in.Username, err)
		}
	}
}

func TestLogin_StoreFailureIsNotACredentialError(t *testing.T) {
	down := errors.New("db down")
	repo := &membermock.Repo{
		GetCredentialsFn: func(context.Context, string) (*member.Credentials, error) { return nil, down },
	}
	_, err := NewUsecase(repo, &fakeRegistrar{}, &fakeIssuer{}).Login(context.Background(), LoginInput{Username: "a", Password: "b"}, time.Now())
	if !errors.Is(err, down) {
		t.Fatalf("want store error, got %v", err)
	}
}
