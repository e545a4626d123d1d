package middleware

import (
	"context"
	"net/http"
	"time"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

// VisitorCookie holds the signed anonymous visitor token.
const VisitorCookie = "hv_visitor"

// Visitor gives every browser a stable anonymous identity, minted on first visit.
type Visitor struct {
	tokens *utils.VisitorTokens
	maxAge time.Duration
	secure bool
}

func NewVisitor(tokens *utils.VisitorTokens, maxAge time.Duration, secure bool) *Visitor {
	return &Visitor{tokens: tokens, maxAge: maxAge, secure: secure}
}

func (v *Visitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Reuse the cookie when it still validates
		visitorID := ""
		if cookie, err := r.Cookie(VisitorCookie); err == nil {
			if id, err := v.tokens.Validate(cookie.Value); err == nil {
				visitorID = id
			}
		}

		// 2. Otherwise mint a new identity
		if visitorID == "" {
			visitorID = utils.GenerateUUID()
			token, err := v.tokens.Issue(visitorID)
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to issue visitor token")
			} else {
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(v.maxAge.Seconds()),
					HttpOnly: true,
					Secure:   v.secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
		}

		// 3. Set Context
		ctx := context.WithValue(r.Context(), domain.VisitorContextKey, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
