package accounts

import (
	"github.com/bookhaven/bookstore/pkg/db/models"
	"github.com/google/uuid"
)

// CreateUserDTO holds the data required by the repo to persist a new user.
// Credential is the already-encoded password representation.
type CreateUserDTO struct {
	Username   string
	Credential string
}

// ToModel materializes the DTO as a persistable user with a fresh id.
func (dto CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: dto.Username,
		Password: dto.Credential,
	}
}
