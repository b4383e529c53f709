package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/version"
)

var startTime = time.Now()

// InfoResponse describes the running build.
type InfoResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Release   bool   `json:"is_release"`
	Uptime    string `json:"uptime"`
}

// Info reports version and build metadata stamped by version.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Version:   v.Version,
			GitCommit: v.GitCommit,
			BuildTime: v.BuildTime,
			GoVersion: v.GoVersion,
			Release:   v.IsRelease(),
			Uptime:    time.Since(startTime).Round(time.Second).String(),
		})
	}
}
