package utils

import "strings"

// JoinPath joins a base URL and a relative resource path with exactly one slash between them.
func JoinPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
