package httpserver

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

var subscriberEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

func (a *api) subscribeNewsletter(c *gin.Context) {
	var in subscribeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !subscriberEmailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	created, err := a.deps.Newsletter.Subscribe(c.Request.Context(), email)
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "you are already subscribed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "thanks for subscribing"})
}
