package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/sirupsen/logrus"
)

type contextKey string

const SessionKey contextKey = "session"

type SessionMiddleware struct {
	log            *logrus.Logger
	sessionService service.SessionService
	cookieName     string
	secure         bool
}

func NewSessionMiddleware(log *logrus.Logger, sessionService service.SessionService, cookieName string, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		log:            log,
		sessionService: sessionService,
		cookieName:     cookieName,
		secure:         secure,
	}
}

// Authenticate resolves the session cookie into a request-scoped Session.
// Requests without a valid session pass through anonymous. The cookie is
// cleared only for sessions known to be invalid.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessionService.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				m.ClearCookie(w)
			} else {
				m.log.Warnf("Failed to resolve session: %+v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// SetCookie stores the signed session token in the browser.
func (m *SessionMiddleware) SetCookie(w http.ResponseWriter, token string, expiry time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(expiry.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *service.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession extracts the session from context
func GetSession(ctx context.Context) (*service.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*service.Session)
	return session, ok && session != nil
}
