// Package httpapi exposes the feed use cases as the /api JSON routes.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/internal/feed"
	"github.com/kbukum/socialfeed/server/middleware"
)

// Register mounts the API on r. Everything except login requires a Bearer
// token accepted by validator.
func Register(r gin.IRouter, svc *feed.Service, validator auth.TokenValidator) {
	api := r.Group("/api")
	api.POST("/auth/login", Login(svc))

	posts := api.Group("/posts", middleware.Auth(validator))
	posts.GET("", ListPosts(svc))
	posts.POST("", CreatePost(svc))
	posts.POST("/:postId/comments", AddComment(svc))
	posts.POST("/:postId/likes", ToggleLike(svc))
}
