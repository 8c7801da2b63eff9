package repository

import (
	"context"
	"errors"
	"fmt"

	"authapi/internal/db"
)

var (
	ErrUserNotFound error = errors.New("user not found")
	ErrEmailTaken   error = errors.New("email already registered")
)

type UserRepository struct {
	db Database
}

func NewUserRepository(db Database) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Migrate() error {
	err := r.db.MigrateModels(&User{})
	if err != nil {
		return fmt.Errorf("migrate table(s): %w", err)
	}

	return nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	err := r.db.Create(ctx, user)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User

	err := r.db.GetOneBy(ctx, "email", email, &user)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}
