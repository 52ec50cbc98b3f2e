package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookhaven/bookstore/pkg/db"
	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/bookhaven/bookstore/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the account store surface.
type Service interface {
	// Register creates an account. It does not establish a session; the
	// caller logs in separately.
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Authenticate returns the user matching the exact username/password
	// pair.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type service struct {
	repo     userRepository
	verifier security.Verifier
}

// NewService constructs an account service with the provided dependencies.
func NewService(repo userRepository, verifier security.Verifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("credential verifier required")
	}
	return &service{repo: repo, verifier: verifier}, nil
}

func (s *service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	credential, err := s.verifier.Encode(password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode credential")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{Username: username, Credential: credential})
	if err != nil {
		// The unique index on username is the source of truth for duplicates.
		if db.IsUniqueViolation(err, "users.username") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateUsername,
				fmt.Sprintf("username %q already exists", username))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "create user")
	}
	return user, nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load user")
	}

	ok, err := s.verifier.Verify(password, user.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	return user, nil
}
