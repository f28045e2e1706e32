package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "malformed request body")
		return
	}

	token, err := s.sessions.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Logout(bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequireSession guards the billing routes with the operator session token.
func (s *Server) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.sessions.Valid(bearerToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Error: errorPayload{Type: "unauthorized", Message: "missing or invalid session"},
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
