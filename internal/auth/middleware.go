package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/JonathanDVZ/CRMGraphQL/internal/logging"
)

type ctxKey struct{}

func WithIdentity(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// FromContext returns the verified requester identity, or nil for an
// anonymous request.
func FromContext(ctx context.Context) *Claims {
	if v := ctx.Value(ctxKey{}); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}

// Middleware verifies a Bearer token and attaches the identity to the
// request context. A missing or bad token leaves the request anonymous;
// guarded operations reject it themselves.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			claims, err := ParseToken(raw, secret)
			if err != nil {
				logging.FromContext(c.Request().Context()).Warn("token rejected", "err", err)
				return next(c)
			}

			ctx := WithIdentity(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
