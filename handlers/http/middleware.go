package httpHandler

import (
	"net/http"

	"vitalmonitor/auth"
	"vitalmonitor/entities"
	"vitalmonitor/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey is where the guard stores the resolved acting user in the
// request context.
const identityKey = "acting_user"

// Guard is the request-scoped authorization middleware. It extracts the
// session token from the cookie, verifies it against the public key,
// resolves the acting identity, and enforces the per-route policy.
// A denied request is answered before any protected handler runs.
type Guard struct {
	issuer     *auth.Issuer
	users      repositories.UserRepository
	cookieName string
	log        *zap.Logger
}

func NewGuard(issuer *auth.Issuer, users repositories.UserRepository, cookieName string, log *zap.Logger) *Guard {
	return &Guard{issuer: issuer, users: users, cookieName: cookieName, log: log}
}

// Authenticate moves the request from NoToken to Verified: cookie
// present, signature and expiry valid, subject resolved to an identity.
// Any failure along the way answers 401.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(g.cookieName)
		if err != nil || token == "" {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		userID, err := g.issuer.Verify(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "authentication failed")
			c.Abort()
			return
		}

		user, err := g.users.GetByID(userID)
		if err != nil {
			// Token subject no longer exists; treat as unauthenticated.
			respondError(c, http.StatusUnauthorized, "authentication failed")
			c.Abort()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// RequireSelfOrAdmin enforces the self-or-admin policy: the acting user
// must be the one addressed by the path parameter, unless it holds the
// admin role.
func (g *Guard) RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ActingUser(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		if c.Param(param) != user.ID && !user.IsAdmin() {
			respondError(c, http.StatusForbidden, "insufficient privilege")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActingUser returns the identity the guard attached to the request.
func ActingUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
