package comments

import (
	"time"

	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/posts"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/users"
)

// Comment belongs to a post and an author. Visibility requires all three
// rows active: the comment, its parent post, and its author.
type Comment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Content    string     `gorm:"size:255;not null"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Author     users.User `gorm:"foreignKey:AuthorID"`
	PostID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Post       posts.Post `gorm:"foreignKey:PostID"`
	IsActive   bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	LastEdited time.Time
}
