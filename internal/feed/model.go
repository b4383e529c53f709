package feed

import "time"

// Field limits shared by the schema and the use-case validation.
const (
	MaxUsernameLength = 50
	MaxPostLength     = 2000
	MaxCommentLength  = 500
)

// User is an account that can log in. Usernames are unique and
// case-sensitive; users are never updated after creation.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
}

// Post is a top-level feed entry.
type Post struct {
	ID        int64     `gorm:"primaryKey"`
	AuthorID  int64     `gorm:"not null;index"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Content   string    `gorm:"size:2000;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE"`
	Likes     []Like    `gorm:"constraint:OnDelete:CASCADE"`
}

// Comment belongs to one post and one author.
type Comment struct {
	ID        int64     `gorm:"primaryKey"`
	PostID    int64     `gorm:"not null;index"`
	AuthorID  int64     `gorm:"not null"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Content   string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// Like marks a post as liked by a user. At most one row exists per
// (post, user) pair.
type Like struct {
	ID     int64 `gorm:"primaryKey"`
	PostID int64 `gorm:"not null;uniqueIndex:idx_likes_post_user"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_likes_post_user"`
	User   User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}
