package cfg

import (
	"time"
)

type Cfg struct {
	// Digest configuration
	ConfigFile string
	DBPath     string
	OutputDir  string
	Days       int

	// Fetching
	Timeout           time.Duration
	UserAgent         string
	SkipFailedSources bool

	// Serving
	Serve bool
	Port  string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
