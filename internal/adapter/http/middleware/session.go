package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"instauto/internal/domain/entities"
	"instauto/pkg"
)

const actorKey = "instauto.actor"

var (
	errMissingSession = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing bearer token", http.StatusUnauthorized)
	errInvalidSession = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Invalid or expired session", http.StatusUnauthorized)
)

// SessionClaims is the token payload issued by the account service.
// Subject carries the account id.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Session parses an HS256 bearer token into an entities.Actor. Requests without
// a valid, unexpired token are rejected with 401.
func Session(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
			return
		}

		actor, err := parseActor(parser, key, raw)
		if err != nil {
			c.AbortWithStatusJSON(errInvalidSession.HTTPStatus, errInvalidSession.ToHTTPError())
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the session actor stored by Session.
func ActorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}

// SignSession issues a token for the given actor. Used by tests and local tooling.
func SignSession(secret string, actor entities.Actor, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = actor.AccountID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Name:             actor.Name,
		Email:            actor.Email,
		Phone:            actor.Phone,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}

func parseActor(parser *jwt.Parser, key []byte, raw string) (entities.Actor, error) {
	if len(key) == 0 {
		return entities.Actor{}, errors.New("session secret not configured")
	}

	var claims SessionClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return entities.Actor{}, err
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return entities.Actor{}, errors.New("session without subject")
	}

	return entities.Actor{
		AccountID: claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Phone:     claims.Phone,
	}, nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
