package services

import (
	"context"

	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/types"
	"golang.org/x/crypto/bcrypt"
)

// Moderate, fixed adaptive-hash cost; matches the fixed-width hash column.
const bcryptCost = 10

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) error
	Update(ctx context.Context, id int, assigns []store.Assignment) error
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates account use-cases: signup, profile update and
// account deletion.
type UserService struct {
	repo UserRepository

	// adminSecret is the shared secret that promotes an account to admin.
	// Empty disables promotion.
	adminSecret string
}

func NewUserService(repo UserRepository, adminSecret string) *UserService {
	return &UserService{repo: repo, adminSecret: adminSecret}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Signup hashes the password and creates the account. Supplying the admin
// secret verbatim creates the account as an admin. A duplicate username
// surfaces as a *store.ConflictError.
func (s *UserService) Signup(ctx context.Context, fullname, username, password, adminSecret string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, types.User{
		FullName:     fullname,
		Username:     username,
		IsAdmin:      s.promotes(adminSecret),
		PasswordHash: string(hashed),
	})
}

// ProfileUpdate is the self-service account mutation. A blank password
// leaves the stored hash untouched; the admin secret may promote on the
// way through.
type ProfileUpdate struct {
	FullName    string
	Username    string
	Password    string
	AdminSecret string
}

// UpdateProfile applies the update to the actor's own account.
func (s *UserService) UpdateProfile(ctx context.Context, actor *types.User, update ProfileUpdate) error {
	if actor == nil {
		return store.ErrNotFound
	}
	assigns := []store.Assignment{
		{Column: "fullname", Value: update.FullName},
		{Column: "username", Value: update.Username},
	}
	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcryptCost)
		if err != nil {
			return err
		}
		assigns = append(assigns, store.Assignment{Column: "password", Value: string(hashed)})
	}
	if s.promotes(update.AdminSecret) {
		assigns = append(assigns, store.Assignment{Column: "is_admin", Value: true})
	}
	return s.repo.Update(ctx, actor.ID, assigns)
}

// DeleteAccount removes the target account for its owner or an admin. An
// unauthorized attempt is indistinguishable from a missing account.
func (s *UserService) DeleteAccount(ctx context.Context, actor *types.User, targetID int) error {
	if !auth.CanMutateUser(actor, targetID) {
		return store.ErrNotFound
	}
	return s.repo.Delete(ctx, targetID)
}

func (s *UserService) promotes(secret string) bool {
	return s.adminSecret != "" && secret == s.adminSecret
}
