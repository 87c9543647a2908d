package gormrepo

import (
	"context"
	"errors"

	"library-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

var _ member.Repository = (*MemberRepository)(nil)

func (r *MemberRepository) EnsureRole(ctx context.Context, name string) (*member.Role, error) {
	role := member.Role{Name: name}
	err := r.db.WithContext(ctx).Where(member.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create writes users then members; callers wanting atomicity run it inside a UoW.
func (r *MemberRepository) Create(ctx context.Context, u *member.User, fullName string) (*member.Profile, error) {
	db := r.db.WithContext(ctx)
	if err := db.Create(u).Error; err != nil {
		return nil, err
	}
	if err := db.Create(&member.Member{ID: u.ID, FullName: fullName}).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, u.ID)
}

func (r *MemberRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&member.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *MemberRepository) profiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS id, users.username AS username, members.full_name AS full_name, roles.name AS role").
		Joins("JOIN members ON members.id = users.id").
		Joins("JOIN roles ON roles.id = users.role_id")
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID uint64) (*member.Profile, error) {
	var out member.Profile
	err := r.profiles(ctx).Where("users.id = ?", memberID).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, member.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MemberRepository) GetCredentials(ctx context.Context, username string) (*member.Credentials, error) {
	var out member.Credentials
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.password_hash AS password_hash, roles.name AS role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.username = ?", username).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, member.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]member.Profile, error) {
	var out []member.Profile
	err := r.profiles(ctx).Order("users.id").Scan(&out).Error
	return out, err
}
