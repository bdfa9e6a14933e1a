package ch

import (
	"os"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"reviewsentry/internal/core/version"
)

// BuildClientInfo labels connections in system.query_log with the service identity
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	info := version.Info()
	host, _ := os.Hostname()

	name := strings.TrimSpace(tag)
	if name == "" {
		name = info.Service
	}

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: name, Version: info.Version},
		{Name: "role", Version: strings.TrimSpace(role)},
		{Name: "commit", Version: info.Commit},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}}
}
