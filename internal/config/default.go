package config

import "time"

type Config struct {
	Listen          string        `yaml:"listen"`
	ManifestURL     string        `yaml:"manifest_url"`
	WikiURLTemplate string        `yaml:"wiki_url_template"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	MaxArchiveBytes int64         `yaml:"max_archive_bytes"`
	UserAgent       string        `yaml:"user_agent"`
	TimeLocation    string        `yaml:"time_location"`
	Watch           WatchConfig   `yaml:"watch"`
}

type WatchConfig struct {
	ServerURL string        `yaml:"server_url"`
	Interval  time.Duration `yaml:"interval"`
	StateFile string        `yaml:"state_file"`
}

const (
	DefaultPort            = "15608"
	DefaultManifestURL     = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	DefaultWikiURLTemplate = "https://minecraft.wiki/w/Java_Edition_%s"
)

func Default() Config {
	return Config{
		Listen:          ":" + DefaultPort,
		ManifestURL:     DefaultManifestURL,
		WikiURLTemplate: DefaultWikiURLTemplate,
		RequestTimeout:  30 * time.Second,
		MaxArchiveBytes: 256 << 20,
		UserAgent:       "", // empty: mcversion/<build version>
		TimeLocation:    "Local",
		Watch: WatchConfig{
			ServerURL: "http://localhost:" + DefaultPort,
			Interval:  60 * time.Second,
			StateFile: "known_versions.txt",
		},
	}
}

// Location returns the zone used to render release_time_formatted.
func (c Config) Location() *time.Location {
	switch c.TimeLocation {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeLocation)
	if err != nil {
		return time.Local
	}
	return loc
}
