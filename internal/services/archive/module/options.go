package module

import (
	"time"

	"reviewsentry/internal/platform/config"
)

// Options controls the archive exporter
type Options struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	FlushTimeout  time.Duration
}

// FromConfig reads with the CORE_ARCHIVE_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ARCHIVE_")
	return Options{
		QueueSize:     c.MayInt("QUEUE_SIZE", 4096),
		BatchSize:     c.MayInt("BATCH_SIZE", 256),
		FlushInterval: c.MayDuration("FLUSH_INTERVAL", 2*time.Second),
		FlushTimeout:  c.MayDuration("FLUSH_TIMEOUT", 10*time.Second),
	}
}
