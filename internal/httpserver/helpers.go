package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/avidela/product-catalog/internal/events"
	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/middleware/session"
	"github.com/avidela/product-catalog/internal/tokens"
)

func SessionCookie(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(tokens.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// publishEvent is best effort: a broker problem is logged, never surfaced.
func publishEvent(ctx context.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}
