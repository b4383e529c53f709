package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/auth"
	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/internal/feed"
	"github.com/kbukum/socialfeed/server"
	"github.com/kbukum/socialfeed/validation"
)

type loginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type contentRequest struct {
	Content string `json:"content"`
}

// Login handles POST /api/auth/login.
func Login(svc *feed.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := server.BindJSON(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}
		if err := validation.Validate(req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		res, err := svc.Login(c.Request.Context(), feed.LoginCommand{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, res)
	}
}

// ListPosts handles GET /api/posts.
func ListPosts(svc *feed.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := caller(c)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		posts, err := svc.ListPosts(c.Request.Context(), id.UserID)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, posts)
	}
}

// CreatePost handles POST /api/posts.
func CreatePost(svc *feed.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := caller(c)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		var req contentRequest
		if err := server.BindJSON(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		post, err := svc.CreatePost(c.Request.Context(), feed.CreatePostCommand{
			UserID:  id.UserID,
			Content: req.Content,
		})
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondCreated(c, post)
	}
}

// AddComment handles POST /api/posts/:postId/comments.
func AddComment(svc *feed.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := caller(c)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		postID, err := server.PathID(c, "postId")
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		var req contentRequest
		if err := server.BindJSON(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		comment, err := svc.AddComment(c.Request.Context(), feed.AddCommentCommand{
			PostID:  postID,
			UserID:  id.UserID,
			Content: req.Content,
		})
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondCreated(c, comment)
	}
}

// ToggleLike handles POST /api/posts/:postId/likes.
func ToggleLike(svc *feed.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := caller(c)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		postID, err := server.PathID(c, "postId")
		if err != nil {
			server.RespondWithError(c, err)
			return
		}

		res, err := svc.ToggleLike(c.Request.Context(), feed.ToggleLikeCommand{
			PostID: postID,
			UserID: id.UserID,
		})
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, res)
	}
}

// caller returns the authenticated identity. Routes using it must sit
// behind middleware.Auth.
func caller(c *gin.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok || id.UserID <= 0 {
		return auth.Identity{}, apperrors.Unauthorized("")
	}
	return id, nil
}
