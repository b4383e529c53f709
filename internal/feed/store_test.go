package feed_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/socialfeed/database"
	"github.com/kbukum/socialfeed/database/migration"
	"github.com/kbukum/socialfeed/internal/feed"
	"github.com/kbukum/socialfeed/internal/feed/memstore"
	"github.com/kbukum/socialfeed/logger"
)

func newGormStore(t *testing.T) feed.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := database.Config{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		LogLevel:     "silent",
	}
	ctx := context.Background()
	db, err := database.New(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := migration.NewRunner(db.GormDB, nil).Add(feed.Migrations()...).Run(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return feed.NewGormStore(db)
}

func newMemStore(t *testing.T) feed.Store { return memstore.New() }

var storeFactories = map[string]func(t *testing.T) feed.Store{
	"gorm":   newGormStore,
	"memory": newMemStore,
}

func forEachStore(t *testing.T, fn func(t *testing.T, s feed.Store)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func mustUser(t *testing.T, s feed.Store, name string) feed.User {
	t.Helper()
	u := feed.User{Username: name, PasswordHash: "hash"}
	if err := s.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("create user %q: %v", name, err)
	}
	return u
}

func mustPost(t *testing.T, s feed.Store, author int64, content string, at time.Time) feed.Post {
	t.Helper()
	p := feed.Post{AuthorID: author, Content: content, CreatedAt: at}
	if err := s.CreatePost(context.Background(), &p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func TestStore_Users(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		if alice.ID == 0 {
			t.Fatal("expected id to be assigned")
		}

		got, err := s.FindUserByUsername(ctx, "alice")
		if err != nil || got.ID != alice.ID {
			t.Fatalf("expected alice, got %+v, %v", got, err)
		}
		if _, err := s.FindUserByUsername(ctx, "Alice"); !errors.Is(err, feed.ErrNotFound) {
			t.Errorf("expected case-sensitive miss, got %v", err)
		}
		if _, err := s.FindUserByID(ctx, alice.ID+100); !errors.Is(err, feed.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		dup := feed.User{Username: "alice", PasswordHash: "x"}
		if err := s.CreateUser(ctx, &dup); !errors.Is(err, feed.ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}

		n, err := s.CountUsers(ctx)
		if err != nil || n != 1 {
			t.Errorf("expected 1 user, got %d, %v", n, err)
		}
	})
}

// A NOCASE column behaves like mysql's default collation.
func TestGormStore_UsernameLookupIgnoresCollation(t *testing.T) {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	ctx := context.Background()
	db, err := database.New(ctx, database.Config{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		LogLevel:     "silent",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.GormDB.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL COLLATE NOCASE UNIQUE,
		password_hash TEXT NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	s := feed.NewGormStore(db)
	alice := mustUser(t, s, "alice")
	if got, err := s.FindUserByUsername(ctx, "alice"); err != nil || got.ID != alice.ID {
		t.Fatalf("expected alice, got %+v, %v", got, err)
	}
	if got, err := s.FindUserByUsername(ctx, "ALICE"); !errors.Is(err, feed.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %+v, %v", got, err)
	}
}

func TestStore_NoOrphanedWrites(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		now := time.Now().UTC()

		if err := s.CreatePost(ctx, &feed.Post{AuthorID: 999, Content: "x", CreatedAt: now}); !errors.Is(err, feed.ErrNotFound) {
			t.Errorf("post by missing author: expected ErrNotFound, got %v", err)
		}
		if err := s.CreateComment(ctx, &feed.Comment{PostID: 999, AuthorID: alice.ID, Content: "x", CreatedAt: now}); !errors.Is(err, feed.ErrNotFound) {
			t.Errorf("comment on missing post: expected ErrNotFound, got %v", err)
		}

		post := mustPost(t, s, alice.ID, "hello", now)
		if err := s.CreateComment(ctx, &feed.Comment{PostID: post.ID, AuthorID: 999, Content: "x", CreatedAt: now}); !errors.Is(err, feed.ErrNotFound) {
			t.Errorf("comment by missing author: expected ErrNotFound, got %v", err)
		}

		ok, err := s.PostExists(ctx, post.ID)
		if err != nil || !ok {
			t.Errorf("expected post to exist, got %v, %v", ok, err)
		}
		ok, _ = s.PostExists(ctx, post.ID+1)
		if ok {
			t.Error("expected missing post")
		}
	})
}

func TestStore_ToggleLike(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		post := mustPost(t, s, alice.ID, "hello", time.Now().UTC())

		liked, err := s.ToggleLike(ctx, post.ID, alice.ID)
		if err != nil || !liked {
			t.Fatalf("first toggle: expected liked, got %v, %v", liked, err)
		}
		liked, err = s.ToggleLike(ctx, post.ID, alice.ID)
		if err != nil || liked {
			t.Fatalf("second toggle: expected unliked, got %v, %v", liked, err)
		}

		posts, _ := s.ListPosts(ctx)
		if len(posts[0].Likes) != 0 {
			t.Errorf("expected no likes after toggle pair, got %d", len(posts[0].Likes))
		}
	})
}

func TestStore_ToggleLikeConcurrentStaysUnique(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		post := mustPost(t, s, alice.ID, "hello", time.Now().UTC())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.ToggleLike(ctx, post.ID, alice.ID); err != nil {
					t.Errorf("toggle: %v", err)
				}
			}()
		}
		wg.Wait()

		posts, err := s.ListPosts(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if n := len(posts[0].Likes); n > 1 {
			t.Errorf("expected at most one like per (post, user), got %d", n)
		}
	})
}

func TestStore_ListPostsOrdering(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx := context.Background()
		alice := mustUser(t, s, "alice")
		bob := mustUser(t, s, "bob")
		base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

		older := mustPost(t, s, alice.ID, "older", base.Add(-time.Hour))
		newer := mustPost(t, s, bob.ID, "newer", base)

		for _, c := range []feed.Comment{
			{PostID: older.ID, AuthorID: bob.ID, Content: "second", CreatedAt: base.Add(-10 * time.Minute)},
			{PostID: older.ID, AuthorID: alice.ID, Content: "first", CreatedAt: base.Add(-50 * time.Minute)},
		} {
			c := c
			if err := s.CreateComment(ctx, &c); err != nil {
				t.Fatalf("comment: %v", err)
			}
		}
		if _, err := s.ToggleLike(ctx, older.ID, bob.ID); err != nil {
			t.Fatalf("like: %v", err)
		}

		posts, err := s.ListPosts(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(posts) != 2 || posts[0].ID != newer.ID || posts[1].ID != older.ID {
			t.Fatalf("expected newest first, got %+v", posts)
		}
		if posts[0].Author.Username != "bob" {
			t.Errorf("expected author preloaded, got %q", posts[0].Author.Username)
		}
		got := posts[1].Comments
		if len(got) != 2 || got[0].Content != "first" || got[1].Content != "second" {
			t.Fatalf("expected comments oldest first, got %+v", got)
		}
		if got[0].Author.Username != "alice" {
			t.Errorf("expected comment author preloaded, got %q", got[0].Author.Username)
		}
		if len(posts[1].Likes) != 1 || posts[1].Likes[0].User.Username != "bob" {
			t.Errorf("expected like by bob, got %+v", posts[1].Likes)
		}
		if !posts[1].CreatedAt.Equal(base.Add(-time.Hour)) {
			t.Errorf("expected timestamp to round-trip, got %v", posts[1].CreatedAt)
		}
	})
}

func TestStore_CanceledContext(t *testing.T) {
	forEachStore(t, func(t *testing.T, s feed.Store) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := s.ListPosts(ctx); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}
