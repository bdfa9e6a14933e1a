package module

import (
	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/platform/config"
)

// EngineOptions reads the engine retention settings under CORE_ANALYTICS_
func EngineOptions(cfg config.Conf) analytics.Options {
	c := cfg.Prefix("CORE_ANALYTICS_")
	return analytics.Options{
		MaxEvents:    c.MayInt("MAX_EVENTS", 0),
		PreviewRunes: c.MayInt("PREVIEW_RUNES", analytics.DefaultPreviewRunes),
	}
}
