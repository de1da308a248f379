package module

import "brewprints/internal/platform/config"

// Options holds configuration settings for the calc module
type Options struct {
	CacheCap int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CALC_")
	return Options{
		CacheCap: cf.MayInt("CACHE_CAP", 256),
	}
}
