package posts

import (
	"time"

	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/users"
)

// Post is authored content. AuthorID never changes after creation; deleting a
// post only clears IsActive and leaves its comments untouched in storage
// (they disappear from reads because listing requires the parent active).
type Post struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title      string     `gorm:"size:64;not null"`
	Content    string     `gorm:"size:255;not null"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Author     users.User `gorm:"foreignKey:AuthorID"`
	IsActive   bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	LastEdited time.Time
}
