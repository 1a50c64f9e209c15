package config

import "time"

const (
	LoginStrategySequential = "sequential"
	LoginStrategyUnified    = "unified"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetLoginStrategy() string
}

type API struct {
	file *FileConfig
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the backend origin every gateway request is resolved against
func (a API) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, a.file.value(func(f *FileConfig) string { return f.API.BaseURL }, "http://localhost:5000/api"))
}

func (a API) GetRequestTimeout() time.Duration {
	def := 30 * time.Second
	if a.file != nil && a.file.API.Timeout > 0 {
		def = a.file.API.Timeout
	}
	return GetDuration(requestTimeoutVar, def)
}

func (a API) GetLoginStrategy() string {
	strategy := GetEnv(loginStrategyVar, a.file.value(func(f *FileConfig) string { return f.API.LoginStrategy }, LoginStrategySequential))
	if strategy != LoginStrategyUnified {
		return LoginStrategySequential
	}
	return strategy
}
