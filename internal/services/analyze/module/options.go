package module

import (
	"runtime"

	"chatstats/internal/core/chatlog"
	"chatstats/internal/platform/config"
)

// Options for the analyze module
type Options struct {
	DateOrder      chatlog.DateOrder
	Workers        int
	MaxUploadBytes int64
	Archive        bool
}

// FromConfig fills options from environment
// CORE_ANALYZE_DATE_ORDER (default dmy) is the default reading of ambiguous dates: dmy or mdy
// CORE_ANALYZE_WORKERS (default GOMAXPROCS) caps parallel ranges per analysis
// CORE_ANALYZE_MAX_UPLOAD_BYTES (default 10 MiB) caps uploads and JSON text bodies
// CORE_ANALYZE_ARCHIVE (default false) stores every report when postgres is configured
func FromConfig(cfg config.Conf) Options {
	a := cfg.Prefix("CORE_ANALYZE_")
	return Options{
		DateOrder:      chatlog.DateOrder(a.MayEnum("DATE_ORDER", "dmy", "dmy", "mdy")),
		Workers:        a.MayInt("WORKERS", runtime.GOMAXPROCS(0)),
		MaxUploadBytes: int64(a.MayInt("MAX_UPLOAD_BYTES", 10<<20)),
		Archive:        a.MayBool("ARCHIVE", false),
	}
}
