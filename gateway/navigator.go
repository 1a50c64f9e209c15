package gateway

import "github.com/rs/zerolog/log"

// Navigator moves the front end to another view. The web renderer implements it with a
// full page redirect; the CLI prints the instruction.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

type logNavigator struct{}

func (logNavigator) Navigate(route string) {
	log.Info().Str("route", route).Msg("Navigate")
}
