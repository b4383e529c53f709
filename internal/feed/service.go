package feed

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/auth/password"
	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/logger"
	"github.com/kbukum/socialfeed/observability"
	"github.com/kbukum/socialfeed/validation"
)

// TokenIssuer mints access tokens after a successful login.
type TokenIssuer interface {
	Issue(userID int64, username string) (auth.Token, error)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.WithComponent("feed")
		}
	}
}

// WithMetrics records one measurement per use-case call.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source used for new posts and comments.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service implements the feed use cases. Every method takes the caller's
// identity explicitly; HTTP concerns stay in the route layer.
type Service struct {
	store   Store
	hasher  password.Hasher
	tokens  TokenIssuer
	log     *logger.Logger
	metrics *observability.Metrics
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a Service.
func NewService(store Store, hasher password.Hasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    logger.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords fail identically, and both pay for one hash comparison.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (res LoginResult, err error) {
	ctx, done := s.track(ctx, "login")
	defer func() { done(err) }()

	if err := validation.New().
		Required("username", cmd.Username).
		Required("password", cmd.Password).
		Error(); err != nil {
		return LoginResult{}, err
	}

	user, err := s.store.FindUserByUsername(ctx, cmd.Username)
	switch {
	case errors.Is(err, ErrNotFound):
		s.hasher.Verify(cmd.Password, s.dummy())
		s.log.WithContext(ctx).Warn("Login failed", map[string]interface{}{"username": cmd.Username})
		return LoginResult{}, apperrors.InvalidCredentials()
	case err != nil:
		return LoginResult{}, err
	}

	if !s.hasher.Verify(cmd.Password, user.PasswordHash) {
		s.log.WithContext(ctx).Warn("Login failed", map[string]interface{}{"username": cmd.Username})
		return LoginResult{}, apperrors.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return LoginResult{}, apperrors.Internal(err)
	}

	s.log.WithContext(ctx).Info("User logged in", map[string]interface{}{"user_id": user.ID})
	return LoginResult{Token: tok.Value, Username: user.Username, ExpiresAt: tok.ExpiresAt}, nil
}

// CreatePost publishes a post for an existing user.
func (s *Service) CreatePost(ctx context.Context, cmd CreatePostCommand) (view PostView, err error) {
	ctx, done := s.track(ctx, "create_post", attribute.Int64(observability.AttrUserID, cmd.UserID))
	defer func() { done(err) }()

	content := strings.TrimSpace(cmd.Content)
	if err := validation.New().
		Required("content", content).
		MaxLength("content", content, MaxPostLength).
		Error(); err != nil {
		return PostView{}, err
	}

	author, err := s.store.FindUserByID(ctx, cmd.UserID)
	if err != nil {
		return PostView{}, s.notFound(err, "user", cmd.UserID)
	}

	post := Post{AuthorID: author.ID, Content: content, CreatedAt: s.timestamp()}
	if err := s.store.CreatePost(ctx, &post); err != nil {
		return PostView{}, s.notFound(err, "user", cmd.UserID)
	}
	post.Author = author

	s.log.WithContext(ctx).Info("Post created", map[string]interface{}{"post_id": post.ID})
	return newPostView(post, author.ID), nil
}

// AddComment appends a comment to an existing post.
func (s *Service) AddComment(ctx context.Context, cmd AddCommentCommand) (view CommentView, err error) {
	ctx, done := s.track(ctx, "add_comment",
		attribute.Int64(observability.AttrUserID, cmd.UserID),
		attribute.Int64(observability.AttrPostID, cmd.PostID))
	defer func() { done(err) }()

	content := strings.TrimSpace(cmd.Content)
	if err := validation.New().
		Required("content", content).
		MaxLength("content", content, MaxCommentLength).
		Error(); err != nil {
		return CommentView{}, err
	}

	exists, err := s.store.PostExists(ctx, cmd.PostID)
	if err != nil {
		return CommentView{}, err
	}
	if !exists {
		return CommentView{}, apperrors.NotFound("post", strconv.FormatInt(cmd.PostID, 10))
	}

	author, err := s.store.FindUserByID(ctx, cmd.UserID)
	if err != nil {
		return CommentView{}, s.notFound(err, "user", cmd.UserID)
	}

	comment := Comment{PostID: cmd.PostID, AuthorID: author.ID, Content: content, CreatedAt: s.timestamp()}
	if err := s.store.CreateComment(ctx, &comment); err != nil {
		return CommentView{}, s.notFound(err, "post", cmd.PostID)
	}
	comment.Author = author

	s.log.WithContext(ctx).Info("Comment added", map[string]interface{}{
		"post_id":    cmd.PostID,
		"comment_id": comment.ID,
	})
	return newCommentView(comment), nil
}

// ToggleLike likes the post if the user has not liked it yet and unlikes it
// otherwise. Missing posts or users are precondition failures.
func (s *Service) ToggleLike(ctx context.Context, cmd ToggleLikeCommand) (res ToggleLikeResult, err error) {
	ctx, done := s.track(ctx, "toggle_like",
		attribute.Int64(observability.AttrUserID, cmd.UserID),
		attribute.Int64(observability.AttrPostID, cmd.PostID))
	defer func() { done(err) }()

	exists, err := s.store.PostExists(ctx, cmd.PostID)
	if err != nil {
		return ToggleLikeResult{}, err
	}
	if !exists {
		return ToggleLikeResult{}, apperrors.Precondition("Post not found")
	}
	if _, err := s.store.FindUserByID(ctx, cmd.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ToggleLikeResult{}, apperrors.Precondition("User not found")
		}
		return ToggleLikeResult{}, err
	}

	liked, err := s.store.ToggleLike(ctx, cmd.PostID, cmd.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ToggleLikeResult{}, apperrors.Precondition("Post not found")
		}
		return ToggleLikeResult{}, err
	}

	res = ToggleLikeResult{IsLiked: liked, Message: "Post unliked"}
	if liked {
		res.Message = "Post liked"
	}
	s.log.WithContext(ctx).Debug("Like toggled", map[string]interface{}{
		"post_id": cmd.PostID,
		"liked":   liked,
	})
	return res, nil
}

// ListPosts returns the whole feed, newest post first, with isLiked
// computed for viewerID.
func (s *Service) ListPosts(ctx context.Context, viewerID int64) (views []PostView, err error) {
	ctx, done := s.track(ctx, "list_posts", attribute.Int64(observability.AttrUserID, viewerID))
	defer func() { done(err) }()

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	views = make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p, viewerID))
	}
	return views, nil
}

// track opens a span for a use case and returns the function that closes it,
// records the operation metric and logs the outcome at debug level.
func (s *Service) track(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	attrs = append(attrs, attribute.String(observability.AttrOperation, op))
	ctx, span := observability.StartSpan(ctx, "feed."+op, attrs...)
	return ctx, func(err error) {
		elapsed := time.Since(start)
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordOperation(ctx, op, status, elapsed)
		s.log.WithContext(ctx).Debug("Operation finished", logger.OperationFields(op, elapsed, err))
		observability.EndSpan(span, err)
	}
}

// notFound maps ErrNotFound onto a 404 for resource id.
func (s *Service) notFound(err error, resource string, id int64) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound(resource, strconv.FormatInt(id, 10))
	}
	return err
}

// timestamp is the creation time stored for new rows. Postgres keeps
// microseconds, so finer precision would not round-trip.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// dummy returns a hash compared against when the username is unknown, so
// that path costs as much as a wrong password.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("socialfeed-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
