package member

import (
	"context"
	"errors"
	"testing"

	domain "library-backend/internal/domain/member"
	"library-backend/internal/domain/uow"
	"library-backend/internal/testutil/membermock"
	"library-backend/internal/testutil/uowmock"

	"golang.org/x/crypto/bcrypt"
)

func newUC(repo *membermock.Repo) *Usecase {
	return NewUsecase(repo, uowmock.Passthrough(uow.Repos{Members: repo})).WithHashCost(bcrypt.MinCost)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	var created *domain.User
	repo := &membermock.Repo{
		EnsureRoleFn: func(_ context.Context, name string) (*domain.Role, error) {
			if name != domain.RoleMember {
				t.Fatalf("role = %q, want MEMBER", name)
			}
			return &domain.Role{ID: 2, Name: name}, nil
		},
		CreateFn: func(_ context.Context, u *domain.User, fullName string) (*domain.Profile, error) {
			u.ID = 5
			created = u
			return &domain.Profile{ID: 5, Username: u.Username, FullName: fullName, Role: domain.RoleMember}, nil
		},
	}

	p, err := newUC(repo).Register(context.Background(), RegisterInput{Username: " alice ", Password: "secret1", FullName: "Alice"})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if p.ID != 5 || created.Username != "alice" || created.RoleID != 2 {
		t.Fatalf("unexpected create: %+v / %+v", p, created)
	}
	if created.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := &membermock.Repo{
		UsernameExistsFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	_, err := newUC(repo).Register(context.Background(), RegisterInput{Username: "bob", Password: "secret1", FullName: "Bob"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_RejectsBadInput(t *testing.T) {
	uc := newUC(&membermock.Repo{})
	if _, err := uc.Register(context.Background(), RegisterInput{Username: "x", Password: "secret1", FullName: "X", Role: "ADMIN"}); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("want ErrUnknownRole, got %v", err)
	}
	if _, err := uc.Register(context.Background(), RegisterInput{Username: " ", Password: "secret1", FullName: "X"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestGetAndList_Delegate(t *testing.T) {
	repo := &membermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Profile, error) {
			if id == 1 {
				return &domain.Profile{ID: 1}, nil
			}
			return nil, domain.ErrNotFound
		},
		ListFn: func(context.Context) ([]domain.Profile, error) {
			return []domain.Profile{{ID: 1}, {ID: 2}}, nil
		},
	}
	uc := newUC(repo)

	if _, err := uc.Get(context.Background(), 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: want ErrNotFound, got %v", err)
	}
	list, err := uc.List(context.Background())
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %v, %v", list, err)
	}
}
