package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type product = struct{ Name, Version string }

// BuildClientInfo tags queries in system.query_log with the app version and role ("api", "cli").
// A commit product is added only when the binary carries VCS data
func BuildClientInfo(role, version string) clickhouse.ClientInfo {
	ps := []product{
		{"chatstats", strings.TrimSpace(version)},
		{"role", strings.TrimSpace(role)},
		{"go", runtime.Version()},
	}
	if host, err := os.Hostname(); err == nil {
		ps = append(ps, product{"host", host})
	}
	if rev := revision(); rev != "" {
		ps = append(ps, product{"commit", rev})
	}
	return clickhouse.ClientInfo{Products: ps}
}

// revision is the short vcs.revision stamped by the go tool, or ""
func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value[:min(7, len(s.Value))]
		}
	}
	return ""
}
