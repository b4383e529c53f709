package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/socialfeed/auth/password"
	"github.com/kbukum/socialfeed/logger"
)

// Seed account credentials.
const (
	SeedUsername = "test"
	SeedPassword = "test"

	seedSamplePassword = "password123"
)

type seedComment struct {
	post    int
	author  string
	content string
	age     time.Duration
}

// Seed fills an empty store with the demo dataset: the test account, three
// sample users, and their posts, comments and likes. Timestamps are relative
// to now. It does nothing when any user exists and reports whether it wrote.
func Seed(ctx context.Context, store Store, hasher password.Hasher, now time.Time, log *logger.Logger) (bool, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("seed")

	n, err := store.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Debug("Store already seeded", map[string]interface{}{"users": n})
		return false, nil
	}

	users := map[string]*User{}
	for _, acct := range []struct{ name, password string }{
		{SeedUsername, SeedPassword},
		{"Alice Johnson", seedSamplePassword},
		{"Bob Smith", seedSamplePassword},
		{"Charlie Brown", seedSamplePassword},
	} {
		hash, err := hasher.Hash(acct.password)
		if err != nil {
			return false, fmt.Errorf("hash password for %q: %w", acct.name, err)
		}
		u := &User{Username: acct.name, PasswordHash: hash}
		if err := store.CreateUser(ctx, u); err != nil {
			return false, fmt.Errorf("create user %q: %w", acct.name, err)
		}
		users[acct.name] = u
	}

	now = now.UTC().Truncate(time.Microsecond)
	posts := []*Post{
		{AuthorID: users["Alice Johnson"].ID, Content: "Just finished reading an amazing book! 📚 What are you all reading?", CreatedAt: now.Add(-2 * time.Hour)},
		{AuthorID: users["Bob Smith"].ID, Content: "Beautiful sunset today! 🌅 Nature never fails to amaze me.", CreatedAt: now.Add(-5 * time.Hour)},
		{AuthorID: users["Charlie Brown"].ID, Content: "Just learned a new programming concept today. Always keep learning! 💻", CreatedAt: now.Add(-24 * time.Hour)},
	}
	for i, p := range posts {
		if err := store.CreatePost(ctx, p); err != nil {
			return false, fmt.Errorf("create post %d: %w", i+1, err)
		}
	}

	comments := []seedComment{
		{0, "Bob Smith", `I just finished "The Great Gatsby"!`, time.Hour},
		{0, "Charlie Brown", `Currently reading "1984" - highly recommend!`, 30 * time.Minute},
		{1, "Alice Johnson", "Stunning! Where was this taken?", 4 * time.Hour},
	}
	for _, c := range comments {
		comment := &Comment{
			PostID:    posts[c.post].ID,
			AuthorID:  users[c.author].ID,
			Content:   c.content,
			CreatedAt: now.Add(-c.age),
		}
		if err := store.CreateComment(ctx, comment); err != nil {
			return false, fmt.Errorf("create comment: %w", err)
		}
	}

	likes := map[int][]string{
		0: {"Alice Johnson", "Bob Smith", "Charlie Brown"},
		1: {"Alice Johnson", "Charlie Brown"},
		2: {"Alice Johnson", "Bob Smith"},
	}
	for i := range posts {
		for _, name := range likes[i] {
			if _, err := store.ToggleLike(ctx, posts[i].ID, users[name].ID); err != nil {
				return false, fmt.Errorf("like post %d: %w", i+1, err)
			}
		}
	}

	log.Info("Seed data created", map[string]interface{}{
		"users":    len(users),
		"posts":    len(posts),
		"comments": len(comments),
	})
	return true, nil
}
