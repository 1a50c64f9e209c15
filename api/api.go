// Package api holds the typed RecycleMate resource clients used by the dashboards.
// Every call goes through the gateway so it carries the session credential.
package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/pickups"
)

// resourcePath builds a path with an escaped id segment
func resourcePath(prefix, id, suffix string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.Wrapf(errors.ErrInvalidPath, "empty id for %s", prefix)
	}
	return prefix + "/" + url.PathEscape(id) + suffix, nil
}

// checkTransition rejects a status change the backend would refuse, before any call is made
func checkTransition(current pickups.Pickup, next pickups.Status) error {
	if err := pickups.Transition(current.Status, next); err != nil {
		return fmt.Errorf("[pickup %s] %w", current.ID, err)
	}
	return nil
}

func listOrEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
