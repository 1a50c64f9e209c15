package sessions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/recyclemate/users"
)

// Storage keys of the session triple
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyRole  = "role"
)

// Keys lists every key a session occupies in Storage.
var Keys = []string{KeyToken, KeyUser, KeyRole}

// Session is the credential of an authenticated actor.
// Token, User and Role are written together on login and cleared together on logout or 401.
type Session struct {
	Token string          // Opaque bearer credential
	Role  users.Role      // May hold an unrecognised value if storage was written by someone else
	User  json.RawMessage // Profile record, structure owned by the backend
}

// Complete reports whether all three parts of the session are present.
func (s Session) Complete() bool {
	return s.Token != "" && s.Role != "" && hasUser(s.User)
}

func hasUser(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Profile decodes the stored user record.
func (s Session) Profile() (users.Profile, error) {
	var p users.Profile
	if !hasUser(s.User) {
		return p, fmt.Errorf("[Session Profile] no user record")
	}
	if err := json.Unmarshal(s.User, &p); err != nil {
		return p, fmt.Errorf("[Session Profile] decode user: %w", err)
	}
	return p, nil
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is not verified;
// the result is informational and never used to authorize anything.
func (s Session) ExpiresAt() (time.Time, bool) {
	token, _, err := jwtlib.NewParser().ParseUnverified(s.Token, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
