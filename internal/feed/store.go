package feed

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a referenced user or post does not exist.
	ErrNotFound = errors.New("feed: not found")
	// ErrDuplicateUsername is returned by CreateUser for a taken username.
	ErrDuplicateUsername = errors.New("feed: username already exists")
)

// Store is the persistence boundary of the feed. Implementations must honor
// ctx cancellation and keep likes unique per (post, user).
type Store interface {
	// FindUserByUsername matches the username exactly.
	FindUserByUsername(ctx context.Context, username string) (User, error)
	FindUserByID(ctx context.Context, id int64) (User, error)
	CountUsers(ctx context.Context) (int64, error)
	// CreateUser assigns u.ID.
	CreateUser(ctx context.Context, u *User) error

	PostExists(ctx context.Context, id int64) (bool, error)
	// CreatePost assigns p.ID. The author must exist.
	CreatePost(ctx context.Context, p *Post) error
	// CreateComment assigns c.ID. The post and the author must exist.
	CreateComment(ctx context.Context, c *Comment) error

	// ToggleLike removes the like of userID on postID if present and adds it
	// otherwise. It reports whether the post is liked afterwards.
	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)

	// ListPosts returns every post newest first with Author, Comments
	// (oldest first, with Author) and Likes (with User) loaded.
	ListPosts(ctx context.Context) ([]Post, error)
}
