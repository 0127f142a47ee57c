package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/recap/internal/identity"
)

const headerRequestID = "X-Request-ID"

// requestID tags each request and logs it once it completes.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(headerRequestID, id)

	start := time.Now()
	err := c.Next()
	s.logger.Info(c.UserContext(), "[%s] %s %s -> %d (%s)", id, c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
	return err
}

// bearerToken makes the Authorization token available to identity checks.
func (s *Server) bearerToken(c *fiber.Ctx) error {
	auth := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		c.SetUserContext(identity.WithToken(c.UserContext(), strings.TrimSpace(token)))
	}
	return c.Next()
}
