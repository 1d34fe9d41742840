package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

const metadataCacheFile = ".metadata_cache.csv"

var metadataHeader = []string{
	"layer", "size_bytes", "last_modified", "crs_code", "min_value", "max_value",
	"is_cog", "extent_minx", "extent_miny", "extent_maxx", "extent_maxy",
}

// cachedRecord is the on-disk subset of a Layer, spec.md §4.4/§6's
// metadata side-car row, keyed by file stem.
type cachedRecord struct {
	sizeBytes    int64
	lastModified int64
	crsCode      int
	min, max     float64
	isCOG        bool
	minx, miny   float64
	maxx, maxy   float64
}

// loadMetadataCache reads <root>/.metadata_cache.csv best-effort: a missing
// or malformed file yields an empty map rather than an error, per spec.md
// §4.4.
func loadMetadataCache(root string, log zerolog.Logger) map[string]cachedRecord {
	out := map[string]cachedRecord{}
	path := filepath.Join(root, metadataCacheFile)

	f, err := os.Open(path)
	if err != nil {
		return out
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("metadata cache malformed, ignoring")
		return out
	}
	for i, row := range rows {
		if i == 0 || len(row) < 11 {
			continue
		}
		rec, err := parseCachedRecord(row)
		if err != nil {
			continue
		}
		out[row[0]] = rec
	}
	return out
}

func parseCachedRecord(row []string) (cachedRecord, error) {
	var rec cachedRecord
	var err error
	if rec.sizeBytes, err = strconv.ParseInt(row[1], 10, 64); err != nil {
		return rec, err
	}
	if rec.lastModified, err = strconv.ParseInt(row[2], 10, 64); err != nil {
		return rec, err
	}
	if rec.crsCode, err = strconv.Atoi(row[3]); err != nil {
		return rec, err
	}
	if rec.min, err = strconv.ParseFloat(row[4], 64); err != nil {
		return rec, err
	}
	if rec.max, err = strconv.ParseFloat(row[5], 64); err != nil {
		return rec, err
	}
	rec.isCOG = row[6] == "true" || row[6] == "1"
	if rec.minx, err = strconv.ParseFloat(row[7], 64); err != nil {
		return rec, err
	}
	if rec.miny, err = strconv.ParseFloat(row[8], 64); err != nil {
		return rec, err
	}
	if rec.maxx, err = strconv.ParseFloat(row[9], 64); err != nil {
		return rec, err
	}
	if rec.maxy, err = strconv.ParseFloat(row[10], 64); err != nil {
		return rec, err
	}
	return rec, nil
}

// saveMetadataCache writes the updated cache atomically (temp file + rename)
// best-effort: any error is logged and swallowed, the server still runs.
func saveMetadataCache(root string, byLayer map[string]cachedRecord, log zerolog.Logger) {
	path := filepath.Join(root, metadataCacheFile)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		log.Warn().Err(err).Msg("could not write metadata cache")
		return
	}

	w := csv.NewWriter(f)
	_ = w.Write(metadataHeader)
	for layer, rec := range byLayer {
		_ = w.Write([]string{
			layer,
			strconv.FormatInt(rec.sizeBytes, 10),
			strconv.FormatInt(rec.lastModified, 10),
			strconv.Itoa(rec.crsCode),
			formatFloat(rec.min),
			formatFloat(rec.max),
			strconv.FormatBool(rec.isCOG),
			formatFloat(rec.minx),
			formatFloat(rec.miny),
			formatFloat(rec.maxx),
			formatFloat(rec.maxy),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Warn().Err(err).Msg("could not flush metadata cache")
		f.Close()
		os.Remove(tmp)
		return
	}
	if err := f.Close(); err != nil {
		log.Warn().Err(err).Msg("could not close metadata cache")
		os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		log.Warn().Err(err).Msg("could not rename metadata cache into place")
		os.Remove(tmp)
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

// matches reports whether rec is still valid for a file with the given size
// and mtime (spec.md §4.4: a hit requires both to match exactly).
func (rec cachedRecord) matches(sizeBytes, lastModified int64) bool {
	return rec.sizeBytes == sizeBytes && rec.lastModified == lastModified
}
