package middleware

import (
	"context"
	"strings"

	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/pkg/authenticator"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/router"
	"github.com/habitforge/backend/pkg/xcontext"
)

// VerifyAccessToken resolves the bearer token (or the token cookie as a
// fallback) into the request user id. Every authenticated endpoint sits
// behind this.
func VerifyAccessToken(engine authenticator.TokenEngine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if prefix := "Bearer "; strings.HasPrefix(authorization, prefix) {
		return strings.TrimPrefix(authorization, prefix)
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
