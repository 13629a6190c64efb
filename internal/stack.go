package internal

import (
	"github.com/MrSnakeDoc/mcversion/internal/buildinfo"
	"github.com/MrSnakeDoc/mcversion/internal/config"
	"github.com/MrSnakeDoc/mcversion/internal/manifest"
	"github.com/MrSnakeDoc/mcversion/internal/resolver"
	"github.com/MrSnakeDoc/mcversion/internal/service"
	"github.com/MrSnakeDoc/mcversion/internal/wiki"
)

// newHTTPClient is swapped in tests to reach httptest servers.
var newHTTPClient = func(cfg config.Config) service.HTTPClient {
	return service.NewHTTPClient(cfg.RequestTimeout)
}

// stack is the resolver wired to its upstream sources.
type stack struct {
	manifest *manifest.Cache
	resolver *resolver.Resolver
}

func newStack(cfg config.Config) *stack {
	fetcher := service.NewFetcher(newHTTPClient(cfg), service.Options{
		UserAgent:    userAgent(cfg),
		Timeout:      cfg.RequestTimeout,
		RequireHTTPS: true,
	})

	m := manifest.New(cfg.ManifestURL, fetcher)
	pages := wiki.NewClient(fetcher, cfg.WikiURLTemplate)

	return &stack{
		manifest: m,
		resolver: resolver.New(m, fetcher, pages, resolver.Options{
			MaxArchiveBytes: cfg.MaxArchiveBytes,
			Location:        cfg.Location(),
		}),
	}
}

func userAgent(cfg config.Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return buildinfo.UserAgent()
}
