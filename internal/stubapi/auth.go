package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront-client/internal/domain"
)

func (s *Server) checkClientCredentials(c *gin.Context) bool {
	id, secret, ok := c.Request.BasicAuth()
	if !ok || id != s.opts.ClientID || secret != s.opts.ClientSecret {
		s.fail(c, http.StatusUnauthorized, "invalid_client", "Please provide valid client credentials.", "")
		return false
	}
	return true
}

func (s *Server) anonymousTokenHandler(c *gin.Context) {
	if !s.checkClientCredentials(c) {
		return
	}
	if c.PostForm("grant_type") != "client_credentials" {
		s.fail(c, http.StatusBadRequest, "unsupported_grant_type", "The grant type is not supported.", "")
		return
	}
	anonymousID := c.PostForm("anonymous_id")
	if anonymousID == "" {
		anonymousID = uuid.NewString()
	}
	token, expiresIn := s.issueToken("", anonymousID)
	c.JSON(http.StatusOK, domain.Token{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		Scope:        c.PostForm("scope"),
		RefreshToken: uuid.NewString(),
	})
}

func (s *Server) customerTokenHandler(c *gin.Context) {
	if !s.checkClientCredentials(c) {
		return
	}
	if c.PostForm("grant_type") != "password" {
		s.fail(c, http.StatusBadRequest, "unsupported_grant_type", "The grant type is not supported.", "")
		return
	}
	email := normalizeEmail(c.PostForm("username"))
	password := c.PostForm("password")

	s.mu.Lock()
	customerID, known := s.byEmail[email]
	var record *customerRecord
	if known {
		record = s.customers[customerID]
	}
	s.mu.Unlock()

	if !known {
		s.fail(c, http.StatusBadRequest, "InvalidCredentials", "Customer with this email was not found.", "")
		return
	}
	if bcrypt.CompareHashAndPassword(record.passwordHash, []byte(password)) != nil {
		s.fail(c, http.StatusBadRequest, "InvalidCredentials", "The given password is incorrect.", "")
		return
	}

	token, expiresIn := s.issueToken(customerID, "")
	c.JSON(http.StatusOK, domain.Token{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		Scope:        c.PostForm("scope"),
		RefreshToken: uuid.NewString(),
	})
}
