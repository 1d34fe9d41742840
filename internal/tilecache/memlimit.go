package tilecache

import (
	"runtime"

	"github.com/rs/zerolog/log"
)

// DefaultRAMFraction is the fraction of total system RAM the cache may
// claim when auto-sizing is requested instead of an explicit --cache-size-gb.
const DefaultRAMFraction = 0.25

// AutoSizeBytes returns a cache byte budget equal to fraction of total
// system RAM minus the process's current overhead and a fixed 512 MiB
// headroom, adapted from the teacher's pyramid-build memory-pressure
// threshold to a cache budget instead of a disk-spill trigger. ok is false
// if RAM detection fails or the computed budget is too small to be useful,
// in which case the caller should fall back to DefaultMaxBytes.
func AutoSizeBytes(fraction float64) (budget int64, ok bool) {
	totalRAM, err := totalSystemRAM()
	if err != nil {
		log.Warn().Err(err).Msg("tilecache: cannot detect system RAM, falling back to default budget")
		return 0, false
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	overhead := m.Sys + 512*1024*1024

	limit := int64(float64(totalRAM)*fraction) - int64(overhead)
	const minimum = 64 * 1024 * 1024
	if limit < minimum {
		log.Warn().Int64("computed_bytes", limit).Msg("tilecache: auto-sized budget too small, falling back to default")
		return 0, false
	}

	log.Info().
		Int64("total_ram_bytes", int64(totalRAM)).
		Float64("fraction", fraction).
		Int64("budget_bytes", limit).
		Msg("tilecache: auto-sized cache budget")
	return limit, true
}
