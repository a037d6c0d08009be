// Package modkit provides module wiring and core deps
package modkit

import (
	"chatstats/internal/modkit/repokit"
	"chatstats/internal/platform/config"
	"chatstats/internal/platform/logger"
	"chatstats/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG and CH are nil when the archive backends are not configured
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// DepsFrom builds Deps over an opened store; a nil store leaves both backends nil
func DepsFrom(cfg config.Conf, log *logger.Logger, st *store.Store) Deps {
	d := Deps{Cfg: cfg, Log: log}
	if st != nil {
		d.PG, d.CH = st.PG, st.CH
	}
	return d
}

// Logger returns Log or the named platform logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
