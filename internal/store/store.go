package store

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// Sentinel errors surfaced to the auth flows.
var (
	ErrEmailExists        = eris.New("store: email already registered")
	ErrInvalidCredentials = eris.New("store: invalid email or password")
	ErrUserNotFound       = eris.New("store: user not found")
)

// UserRegistration is the input for creating an account.
type UserRegistration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// Store defines the persistence interface: user accounts plus one business
// profile blob per user.
type Store interface {
	// Users
	CreateUser(ctx context.Context, reg UserRegistration) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Profiles. LoadProfile returns a default profile when the user has
	// never saved one; SaveProfile is a last-write-wins upsert.
	SaveProfile(ctx context.Context, userID string, p *model.BusinessProfile) error
	LoadProfile(ctx context.Context, userID string) (*model.BusinessProfile, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", eris.Wrap(err, "store: hash password")
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
