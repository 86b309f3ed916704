package serverutils

import (
	"strings"
	"time"

	"noter-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerKey = "user_id"

// JwtMiddleware rejects requests without a valid bearer token.
func JwtMiddleware(secret string) fiber.Handler {
	return jwtMiddleware(secret, false)
}

// OptionalJwtMiddleware lets anonymous requests through but still rejects a bad token.
func OptionalJwtMiddleware(secret string) fiber.Handler {
	return jwtMiddleware(secret, true)
}

// AuthGuard bundles both middlewares for one signing secret so routes can pick per endpoint.
type AuthGuard struct {
	Required fiber.Handler
	Optional fiber.Handler
}

func NewAuthGuard(secret string) AuthGuard {
	return AuthGuard{
		Required: JwtMiddleware(secret),
		Optional: OptionalJwtMiddleware(secret),
	}
}

func jwtMiddleware(secret string, optional bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" && optional {
			return ctx.Next()
		}
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return apperror.Unauthenticated("Missing token")
		}
		tokenStr := authHeader[7:]

		userId, err := ParseToken(secret, tokenStr)
		if err != nil {
			return apperror.Unauthenticated("Invalid token")
		}

		ctx.Locals(callerKey, userId.String())
		return ctx.Next()
	}
}

// IssueToken signs an HS256 token carrying user_id.
func IssueToken(secret string, userId uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func ParseToken(secret, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, apperror.Unauthenticated("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperror.Unauthenticated("Invalid claims")
	}
	raw, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthenticated("Invalid claims")
	}
	return userId, nil
}

// CallerID returns the authenticated user, or nil for anonymous requests.
func CallerID(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals(callerKey).(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// ParseUUIDParam treats a malformed id like an unknown one.
func ParseUUIDParam(ctx *fiber.Ctx, name, notFoundMessage string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFoundMessage)
	}
	return id, nil
}

// RequireCaller returns the authenticated user or an Unauthenticated error.
func RequireCaller(ctx *fiber.Ctx) (uuid.UUID, error) {
	caller := CallerID(ctx)
	if caller == nil {
		return uuid.Nil, apperror.Unauthenticated("You must be logged in")
	}
	return *caller, nil
}
