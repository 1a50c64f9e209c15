package config

import (
	"os"
	"path/filepath"
)

type SessionConfig interface {
	GetSessionFile() string
}

type Session struct {
	file *FileConfig
}

var _ SessionConfig = Session{}

// GetSessionFile returns where the CLI persists the token/user/role triple between runs.
func (s Session) GetSessionFile() string {
	return GetEnv(sessionFileVar, s.file.value(func(f *FileConfig) string { return f.SessionFile }, defaultSessionFile()))
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "recyclemate-session.json")
	}
	return filepath.Join(dir, "recyclemate", "session.json")
}
