package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/users"
)

type Controller struct {
	users  *users.Service
	tokens *TokenManager
}

func NewController(usersSvc *users.Service, tokens *TokenManager) *Controller {
	return &Controller{users: usersSvc, tokens: tokens}
}

type loginDTO struct {
	Username string `json:"username" binding:"required,min=6,max=64"`
	Password string `json:"password" binding:"required,min=12,max=128"`
}

func (ct *Controller) Login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	u, err := ct.users.Authenticate(c.Request.Context(), dto.Username, dto.Password)
	if err != nil {
		// one message for unknown name and wrong password alike
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	tok, err := ct.tokens.Generate(u)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tok,
		"user": gin.H{
			"id":          u.ID,
			"userName":    u.UserName,
			"displayName": u.DisplayName,
		},
	})
}
