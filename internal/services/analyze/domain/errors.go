package domain

import perr "chatstats/internal/platform/errors"

var (
	// ErrArchiveDisabled is returned by report lookups when no postgres is configured
	ErrArchiveDisabled = perr.Unavailablef("report archive is disabled")

	// ErrRollupDisabled is returned by daily lookups when no clickhouse is configured
	ErrRollupDisabled = perr.Unavailablef("daily rollup is disabled")

	// ErrNoFile is returned when the multipart form has no chatFile part
	ErrNoFile = perr.WithField(perr.Validationf("please upload a file"), "chatFile")
)
