// Package rxlog is a thin wrapper around go.uber.org/zap for the one place
// in this module structured logging earns its keep: the benchmark driver's
// progress and result reporting. The core sort packages stay logging-free,
// the way a library package should, and report through radix64.Stats
// instead; this package turns a Stats snapshot and timing numbers into the
// zap fields a caller logs.
package rxlog

import (
	"time"

	"go.uber.org/zap"

	"github.com/watt-toolkit/radix64/pkg/radix64"
)

// New builds a development-mode zap.Logger: human-readable console output,
// suitable for a CLI driver rather than a long-running service.
func New() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// PassFields turns one timed sort pass into zap fields: elapsed time and the
// resulting throughput in GB/s (bytes = keys * 8, per spec.md §6).
func PassFields(numKeys int, elapsed time.Duration) []zap.Field {
	bytes := float64(numKeys) * 8
	gbPerSec := bytes / elapsed.Seconds() / 1e9
	return []zap.Field{
		zap.Int("keys", numKeys),
		zap.Duration("elapsed", elapsed),
		zap.Float64("gb_per_sec", gbPerSec),
	}
}

// StatsFields flattens a Stats snapshot into zap fields for logging after a
// sort completes.
func StatsFields(snap radix64.StatsSnapshot) []zap.Field {
	return []zap.Field{
		zap.Int64("slices_allocated", snap.SlicesAllocated),
		zap.Int64("slices_checked_out", snap.SlicesCheckedOut),
		zap.Int64("slices_freed", snap.SlicesFreed),
		zap.Int64("regions_allocated", snap.RegionsAllocated),
		zap.Int64("splits_performed", snap.SplitsPerformed),
		zap.Int64("keys_scattered", snap.KeysScattered),
		zap.Int64("pool_balance", snap.PoolBalance()),
	}
}
