package feed

import "time"

// LoginCommand carries the credentials of a login attempt.
type LoginCommand struct {
	Username string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"-"`
}

// CreatePostCommand publishes a post as UserID.
type CreatePostCommand struct {
	UserID  int64
	Content string
}

// AddCommentCommand comments on PostID as UserID.
type AddCommentCommand struct {
	PostID  int64
	UserID  int64
	Content string
}

// ToggleLikeCommand flips the like of UserID on PostID.
type ToggleLikeCommand struct {
	PostID int64
	UserID int64
}

// ToggleLikeResult reports the like state after a toggle.
type ToggleLikeResult struct {
	IsLiked bool   `json:"isLiked"`
	Message string `json:"message"`
}

// PostView is a post as seen by one viewer.
type PostView struct {
	ID        int64         `json:"id"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	LikeCount int           `json:"likeCount"`
	LikedBy   []string      `json:"likedBy"`
	IsLiked   bool          `json:"isLiked"`
	Comments  []CommentView `json:"comments"`
}

// CommentView is a comment with its author's username.
type CommentView struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newPostView(p Post, viewerID int64) PostView {
	v := PostView{
		ID:        p.ID,
		Author:    p.Author.Username,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.UTC(),
		LikeCount: len(p.Likes),
		LikedBy:   make([]string, 0, len(p.Likes)),
		Comments:  make([]CommentView, 0, len(p.Comments)),
	}
	for _, l := range p.Likes {
		v.LikedBy = append(v.LikedBy, l.User.Username)
		if viewerID > 0 && l.UserID == viewerID {
			v.IsLiked = true
		}
	}
	for _, c := range p.Comments {
		v.Comments = append(v.Comments, newCommentView(c))
	}
	return v
}

func newCommentView(c Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Author:    c.Author.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC(),
	}
}
