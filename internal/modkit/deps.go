// Package modkit provides module wiring and core deps.
package modkit

import (
	"reviewsentry/internal/modkit/repokit"
	"reviewsentry/internal/platform/config"
	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil unless the archive store is configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
