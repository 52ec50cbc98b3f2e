package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered shopper. The username comparison is
// case-sensitive: the column keeps sqlite's default BINARY collation.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username  string    `gorm:"column:username;not null;uniqueIndex"`
	Password  string    `gorm:"column:password;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
