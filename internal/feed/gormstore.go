package feed

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbukum/socialfeed/database"
)

// GormStore implements Store on a relational database through gorm.
type GormStore struct {
	db *database.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store over an open database.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// FindUserByUsername implements Store.
func (s *GormStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error
	if err == nil && u.Username != username {
		// case-insensitive collation (mysql default) matched another spelling
		return User{}, ErrNotFound
	}
	return u, s.translate(err, "user")
}

// FindUserByID implements Store.
func (s *GormStore) FindUserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.WithContext(ctx).Take(&u, id).Error
	return u, s.translate(err, "user")
}

// CountUsers implements Store.
func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, s.translate(err, "user")
}

// CreateUser implements Store.
func (s *GormStore) CreateUser(ctx context.Context, u *User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if database.IsDuplicateError(err) {
		return ErrDuplicateUsername
	}
	return s.translate(err, "user")
}

// PostExists implements Store.
func (s *GormStore) PostExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Limit(1).Count(&n).Error
	return n > 0, s.translate(err, "post")
}

// CreatePost implements Store.
func (s *GormStore) CreatePost(ctx context.Context, p *Post) error {
	err := s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireRow(tx, &User{}, p.AuthorID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(p).Error
	})
	return s.translate(err, "post")
}

// CreateComment implements Store.
func (s *GormStore) CreateComment(ctx context.Context, c *Comment) error {
	err := s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireRow(tx, &Post{}, c.PostID); err != nil {
			return err
		}
		if err := requireRow(tx, &User{}, c.AuthorID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(c).Error
	})
	return s.translate(err, "comment")
}

// requireRow returns ErrNotFound unless model has a row with id. Not every
// driver enforces foreign keys.
func requireRow(tx *gorm.DB, model interface{}, id int64) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike implements Store. Delete-first inside a transaction: a deleted
// row means the like is gone; otherwise the insert relies on the unique
// (post_id, user_id) index, and losing the race to a concurrent insert still
// leaves the post liked.
func (s *GormStore) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	var liked bool
	err := s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		like := Like{PostID: postID, UserID: userID}
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if database.IsDuplicateError(err) {
		return true, nil
	}
	if err != nil {
		return false, s.translate(err, "like")
	}
	return liked, nil
}

// ListPosts implements Store.
func (s *GormStore) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Likes.User").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, s.translate(err, "post")
	}
	return posts, nil
}

// translate maps gorm errors onto the store contract: missing rows and
// foreign-key violations become ErrNotFound, anything else an AppError.
func (s *GormStore) translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), database.IsNotFoundError(err), database.IsForeignKeyError(err):
		return ErrNotFound
	default:
		return database.FromDatabase(err, resource)
	}
}
