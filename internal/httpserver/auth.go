package httpserver

import (
	"net/http"

	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenBodyRequest struct {
	Token string `json:"token" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *api) register(c *gin.Context) {
	var in usersvc.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := a.deps.UserSvc.Register(c.Request.Context(), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registered, please verify your email",
		"user":    user,
	})
}

func (a *api) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	user, token, err := a.deps.UserSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.SetCookie("access_token", token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (a *api) verifyEmail(c *gin.Context) {
	var in tokenBodyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	if err := a.deps.UserSvc.VerifyEmail(c.Request.Context(), in.Token); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

func (a *api) forgotPassword(c *gin.Context) {
	var in forgotPasswordRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}
	if err := a.deps.UserSvc.RequestPasswordReset(c.Request.Context(), in.Email); err != nil {
		a.respondError(c, err)
		return
	}
	// Same response whether or not the address exists.
	c.JSON(http.StatusOK, gin.H{"message": "if that address is registered, a reset link was sent"})
}

func (a *api) resetPassword(c *gin.Context) {
	var in resetPasswordRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and password required"})
		return
	}
	if err := a.deps.UserSvc.ResetPassword(c.Request.Context(), in.Token, in.Password); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (a *api) profile(c *gin.Context) {
	user, err := a.deps.UserSvc.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
