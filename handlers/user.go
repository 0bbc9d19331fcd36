package handlers

import (
	"net/http"

	"central/services/user"

	"github.com/gin-gonic/gin"
)

// RegisterUser creates an account pending email verification.
func RegisterUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := UserService.Register(c.Request.Context(), input.Email, input.Name, input.Password)
	if err != nil {
		if err == user.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// VerifyUser redeems an email verification token.
func VerifyUser(c *gin.Context) {
	token := c.Query("token")
	u, err := UserService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired verification token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true, "user": u})
}

// LoginUser checks credentials and issues a session token.
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	auth, err := UserService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch err {
		case user.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		case user.ErrNotVerified:
			c.JSON(http.StatusForbidden, gin.H{"error": "account not verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, auth)
}
