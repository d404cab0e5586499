package users

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account row. Deleting an account only clears IsActive; the row
// (and its unique userName) stays behind so the name cannot be re-registered.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName  string    `gorm:"size:128"`
	UserName     string    `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:72;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	LastEdited   time.Time
}

func HashPassword(pw string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
