package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Doer sends a request and returns the response
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type DoerFunc func(*http.Request) (*http.Response, error)

func (f DoerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Middleware intercepts a request on its way out and the response on its way back
type Middleware func(Doer) Doer

// ChainMiddleware wraps d so that mw[0] runs first
func ChainMiddleware(d Doer, mw ...Middleware) Doer {
	chained := d
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

type publicKey struct{}

func withPublic(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicKey{}, true)
}

// IsPublic reports whether the request was issued with the Public option.
func IsPublic(r *http.Request) bool {
	public, _ := r.Context().Value(publicKey{}).(bool)
	return public
}

// BearerAuth attaches the stored token as "Authorization: Bearer <token>".
// Without a session the request is sent unmodified.
func BearerAuth(repo sessions.Repo) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(r *http.Request) (*http.Response, error) {
			if IsPublic(r) {
				return next.Do(r)
			}
			session, err := repo.Get()
			if err != nil {
				return next.Do(r)
			}
			(&oauth2.Token{AccessToken: session.Token, TokenType: "Bearer"}).SetAuthHeader(r)
			return next.Do(r)
		})
	}
}

// UnauthorizedTeardown clears the session and navigates to loginRoute when the backend answers 401.
// It runs once per failing call and never retries.
func UnauthorizedTeardown(repo sessions.Repo, navigator Navigator, loginRoute string) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.Do(r)
			if err != nil || resp.StatusCode != http.StatusUnauthorized || IsPublic(r) {
				return resp, err
			}

			log.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("Session rejected by backend, signing out")
			if clearErr := repo.Clear(); clearErr != nil {
				log.Err(clearErr).Msg("Failed to clear session after 401")
			}
			navigator.Navigate(loginRoute)
			return resp, nil
		})
	}
}

// RequestID tags every request with an X-Request-ID header unless the caller set one.
func RequestID(next Doer) Doer {
	return DoerFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("X-Request-ID") == "" {
			r.Header.Set("X-Request-ID", uuid.New().String())
		}
		return next.Do(r)
	})
}

// Logging traces each call at debug level. It is a pass-through outside env DEV.
func Logging(env string) Middleware {
	return func(next Doer) Doer {
		if env != "DEV" {
			return next
		}
		return DoerFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(r)
			event := log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", r.Header.Get("X-Request-ID")).
				Dur("elapsed", time.Since(start))
			if err != nil {
				event.Err(err).Msg("request failed")
				return resp, err
			}
			event.Int("status", resp.StatusCode).Msg("request")
			return resp, nil
		})
	}
}
