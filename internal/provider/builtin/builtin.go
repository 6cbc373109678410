// Package builtin wires the bundled metadata backends into a registry. It lives
// apart from package provider to avoid import cycles.
package builtin

import (
	"fmt"

	"github.com/Digital-Shane/torrent-tidy/internal/provider"
	"github.com/Digital-Shane/torrent-tidy/internal/provider/omdb"
	"github.com/Digital-Shane/torrent-tidy/internal/provider/tmdb"
	"github.com/Digital-Shane/torrent-tidy/internal/provider/tvdb"
	"github.com/Digital-Shane/torrent-tidy/internal/provider/tvmaze"
)

// DefaultProvider is used when the configuration names none.
const DefaultProvider = "tvmaze"

// Registry returns a registry holding every built-in provider.
func Registry() *provider.Registry {
	r := provider.NewRegistry()
	mustRegister(r, "tvmaze", func() provider.Provider { return tvmaze.New() }, false)
	mustRegister(r, "tmdb", func() provider.Provider { return tmdb.New() }, true)
	mustRegister(r, "tvdb", func() provider.Provider { return tvdb.New() }, true)
	mustRegister(r, "omdb", func() provider.Provider { return omdb.New() }, true)
	return r
}

func mustRegister(r *provider.Registry, name string, factory provider.Factory, requiresKey bool) {
	if err := r.Register(name, factory, requiresKey); err != nil {
		panic(fmt.Sprintf("builtin provider %s: %v", name, err))
	}
}
