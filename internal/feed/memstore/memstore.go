// Package memstore provides an in-memory feed.Store for tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/kbukum/socialfeed/internal/feed"
)

// Store is a mutex-guarded feed.Store with auto-increment ids. It keeps the
// same ordering and uniqueness rules as the relational store.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]feed.User
	posts    map[int64]feed.Post
	comments []feed.Comment
	likes    []feed.Like
	nextID   map[string]int64
}

var _ feed.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:  make(map[int64]feed.User),
		posts:  make(map[int64]feed.Post),
		nextID: make(map[string]int64),
	}
}

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// FindUserByUsername implements feed.Store.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (feed.User, error) {
	if err := ctx.Err(); err != nil {
		return feed.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return feed.User{}, feed.ErrNotFound
}

// FindUserByID implements feed.Store.
func (s *Store) FindUserByID(ctx context.Context, id int64) (feed.User, error) {
	if err := ctx.Err(); err != nil {
		return feed.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return feed.User{}, feed.ErrNotFound
	}
	return u, nil
}

// CountUsers implements feed.Store.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// CreateUser implements feed.Store.
func (s *Store) CreateUser(ctx context.Context, u *feed.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return feed.ErrDuplicateUsername
		}
	}
	u.ID = s.id("users")
	s.users[u.ID] = *u
	return nil
}

// PostExists implements feed.Store.
func (s *Store) PostExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.posts[id]
	return ok, nil
}

// CreatePost implements feed.Store.
func (s *Store) CreatePost(ctx context.Context, p *feed.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.AuthorID]; !ok {
		return feed.ErrNotFound
	}
	p.ID = s.id("posts")
	s.posts[p.ID] = feed.Post{ID: p.ID, AuthorID: p.AuthorID, Content: p.Content, CreatedAt: p.CreatedAt}
	return nil
}

// CreateComment implements feed.Store.
func (s *Store) CreateComment(ctx context.Context, c *feed.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return feed.ErrNotFound
	}
	if _, ok := s.users[c.AuthorID]; !ok {
		return feed.ErrNotFound
	}
	c.ID = s.id("comments")
	s.comments = append(s.comments, feed.Comment{
		ID: c.ID, PostID: c.PostID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt,
	})
	return nil
}

// ToggleLike implements feed.Store.
func (s *Store) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			return false, nil
		}
	}
	if _, ok := s.posts[postID]; !ok {
		return false, feed.ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return false, feed.ErrNotFound
	}
	s.likes = append(s.likes, feed.Like{ID: s.id("likes"), PostID: postID, UserID: userID})
	return true, nil
}

// ListPosts implements feed.Store.
func (s *Store) ListPosts(ctx context.Context) ([]feed.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]feed.Post, 0, len(s.posts))
	for _, p := range s.posts {
		p.Author = s.users[p.AuthorID]
		p.Comments = nil
		p.Likes = nil
		for _, c := range s.comments {
			if c.PostID == p.ID {
				c.Author = s.users[c.AuthorID]
				p.Comments = append(p.Comments, c)
			}
		}
		sort.SliceStable(p.Comments, func(i, j int) bool {
			a, b := p.Comments[i], p.Comments[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		for _, l := range s.likes {
			if l.PostID == p.ID {
				l.User = s.users[l.UserID]
				p.Likes = append(p.Likes, l)
			}
		}
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return posts, nil
}
