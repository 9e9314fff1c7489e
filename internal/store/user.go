package store

import (
	"context"

	"github.com/members-club/webserver/types"
)

const (
	usersTable   = "users"
	userIDColumn = "user_id"
)

// UserRepository handles persistence for users on top of the generic store.
type UserRepository struct {
	store   *Store
	ceiling int
}

// NewUserRepository wires the repository with its retention ceiling.
func NewUserRepository(store *Store, ceiling int) *UserRepository {
	return &UserRepository{store: store, ceiling: ceiling}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	row, err := r.store.ReadOne(ctx, usersTable, []Filter{{Column: userIDColumn, Value: id}})
	if err != nil {
		return types.User{}, err
	}
	return userFromRow(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	row, err := r.store.ReadOne(ctx, usersTable, []Filter{{Column: "username", Value: username}})
	if err != nil {
		return types.User{}, err
	}
	return userFromRow(row), nil
}

// Create inserts the user and then trims the table to its ceiling. The trim
// is best-effort and never fails the signup.
func (r *UserRepository) Create(ctx context.Context, user types.User) error {
	err := r.store.Create(ctx, usersTable, []Assignment{
		{Column: "fullname", Value: user.FullName},
		{Column: "username", Value: user.Username},
		{Column: "is_admin", Value: user.IsAdmin},
		{Column: "password", Value: user.PasswordHash},
	})
	if err != nil {
		return err
	}
	r.store.TrimToLimit(ctx, usersTable, userIDColumn, r.ceiling)
	return nil
}

// Update applies the given assignments to one user.
func (r *UserRepository) Update(ctx context.Context, id int, assigns []Assignment) error {
	affected, err := r.store.Update(ctx, usersTable, []Filter{{Column: userIDColumn, Value: id}}, assigns)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	affected, err := r.store.Delete(ctx, usersTable, []Filter{{Column: userIDColumn, Value: id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func userFromRow(row Row) types.User {
	return types.User{
		ID:           row.Int(userIDColumn),
		FullName:     row.String("fullname"),
		Username:     row.String("username"),
		IsAdmin:      row.Bool("is_admin"),
		PasswordHash: row.String("password"),
	}
}
