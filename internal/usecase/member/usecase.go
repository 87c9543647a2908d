package member

import (
	"context"
	"strings"

	"library-backend/internal/domain/member"
	"library-backend/internal/domain/uow"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=LIBRARIAN MEMBER"`
}

type Usecase struct {
	members member.Repository
	uow     uow.UnitOfWork
	cost    int
}

func NewUsecase(members member.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{members: members, uow: tx, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost.
func (u *Usecase) WithHashCost(cost int) *Usecase {
	u.cost = cost
	return u
}

// Register creates the user and its member row in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*member.Profile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Username == "" || in.FullName == "" || in.Password == "" {
		return nil, member.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = member.RoleMember
	}
	if !member.ValidRole(in.Role) {
		return nil, member.ErrUnknownRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, err
	}

	var out *member.Profile
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Members.UsernameExists(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return member.ErrUsernameTaken
		}
		role, err := r.Members.EnsureRole(ctx, in.Role)
		if err != nil {
			return err
		}
		out, err = r.Members.Create(ctx, &member.User{
			Username:     in.Username,
			PasswordHash: string(hash),
			RoleID:       role.ID,
		}, in.FullName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, memberID uint64) (*member.Profile, error) {
	return u.members.GetByID(ctx, memberID)
}

func (u *Usecase) List(ctx context.Context) ([]member.Profile, error) {
	return u.members.List(ctx)
}

func (u *Usecase) UsernameExists(ctx context.Context, username string) (bool, error) {
	return u.members.UsernameExists(ctx, username)
}
