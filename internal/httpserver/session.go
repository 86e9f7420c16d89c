// internal/httpserver/session.go
//
// Session cookie handling.
// The cookie holds an HS256 JWT whose subject is the session ID. The token
// only locates a session in the store; all round state stays server-side.
// Invalid, expired or orphaned tokens are replaced with a fresh session.

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/anagram-manager/internal/game"
	"github.com/robalobadob/anagram-manager/internal/store"
)

// signSession creates a token for session id, valid for the configured TTL.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseSession verifies a token and returns its session ID and expiry.
func (s *Server) parseSession(token string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", time.Time{}, err
	}
	if !t.Valid || claims.Subject == "" {
		return "", time.Time{}, errors.New("invalid session token")
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// setSessionCookie writes the session cookie with appropriate attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// sessionID returns the caller's live session ID, creating a session and
// setting the cookie when the request has none. A token past half its
// lifetime is re-signed so active players keep their session.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(s.opts.CookieName); err == nil && c.Value != "" {
		id, exp, err := s.parseSession(c.Value)
		if err == nil {
			_, err := s.store.Get(r.Context(), id)
			switch {
			case err == nil:
				if time.Until(exp) < s.opts.TTL/2 {
					if err := s.refreshSession(w, id); err != nil {
						return "", err
					}
				}
				return id, nil
			case !errors.Is(err, store.ErrNotFound):
				return "", err
			}
		} else {
			log.Debug().Err(err).Msg("discarding session token")
		}
	}

	sess := game.NewSession(uuid.NewString())
	if err := s.store.Save(r.Context(), sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	s.setSessionCookie(w, tok, exp)
	log.Debug().Str("session", sess.ID).Msg("new session")
	return sess.ID, nil
}

// refreshSession issues a fresh token for an existing session.
func (s *Server) refreshSession(w http.ResponseWriter, id string) error {
	tok, exp, err := s.signSession(id)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	s.setSessionCookie(w, tok, exp)
	log.Debug().Str("session", id).Time("expires", exp).Msg("session refreshed")
	return nil
}
