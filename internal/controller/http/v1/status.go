package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valpere/translay/internal/config"
)

const (
	serviceName = "Translator API"

	// isoMillis matches the ISO-8601 form produced by JavaScript's Date.toISOString.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

type statusRoutes struct {
	identity config.IdentityConfig
	now      func() time.Time
}

func newStatusRoutes(handler gin.IRoutes, identity config.IdentityConfig) {
	r := &statusRoutes{identity: identity, now: time.Now}

	handler.GET("/", r.status)
	handler.GET("/health", r.health)
}

type statusResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Student   string `json:"student"`
	Developer string `json:"developer"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func (r *statusRoutes) status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Message:   r.identity.Message,
		Status:    "active",
		Student:   r.identity.Student,
		Developer: r.identity.Developer,
	})
}

func (r *statusRoutes) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: r.now().UTC().Format(isoMillis),
		Service:   serviceName,
	})
}
