package module

import (
	"time"

	"brewprints/internal/platform/config"
)

// Options holds configuration settings for the runs module
type Options struct {
	Timeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("RUNS_")
	return Options{
		Timeout: rf.MayDuration("WRITE_TIMEOUT", 2*time.Second),
	}
}
