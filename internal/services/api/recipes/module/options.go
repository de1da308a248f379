package module

import "brewprints/internal/platform/config"

// Options holds configuration settings for the recipes module
type Options struct {
	// AdminToken guards destructive endpoints. Empty leaves them open,
	// which is only acceptable for local development
	AdminToken string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("RECIPES_")
	return Options{
		AdminToken: cf.MayString("ADMIN_TOKEN", ""),
	}
}
