// Package blog defines the persistent domain model shared by the users,
// posts, and comments packages.
package blog

import (
	"time"

	"github.com/lib/pq"
)

// User is a registered account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is an article written by a user.
type Post struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"not null" json:"content"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	AuthorID  int64          `gorm:"not null;index" json:"author_id"`
	Author    *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	AuthorID  int64     `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    int64     `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListParams carries take/skip pagination for collection queries.
type ListParams struct {
	Take int
	Skip int
}
