package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadMetadataCache_MissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	cache := loadMetadataCache(dir, zerolog.Nop())
	if len(cache) != 0 {
		t.Fatalf("got %d entries, want 0", len(cache))
	}
}

func TestLoadMetadataCache_MalformedFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, metadataCacheFile)
	if err := os.WriteFile(path, []byte("not,a,valid\ncsv\x00file"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := loadMetadataCache(dir, zerolog.Nop())
	if len(cache) != 0 {
		t.Fatalf("got %d entries from malformed file, want 0", len(cache))
	}
}

func TestSaveThenLoadMetadataCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := map[string]cachedRecord{
		"alps": {
			sizeBytes: 1024, lastModified: 1700000000, crsCode: 4326,
			min: 0, max: 4000, isCOG: true,
			minx: 5, miny: 45, maxx: 10, maxy: 48,
		},
	}
	saveMetadataCache(dir, records, zerolog.Nop())

	loaded := loadMetadataCache(dir, zerolog.Nop())
	rec, ok := loaded["alps"]
	if !ok {
		t.Fatalf("missing 'alps' after round trip")
	}
	if !rec.matches(1024, 1700000000) {
		t.Errorf("round-tripped record doesn't match: %+v", rec)
	}
	if rec.crsCode != 4326 || rec.max != 4000 || !rec.isCOG {
		t.Errorf("round-tripped fields wrong: %+v", rec)
	}
}

func TestCachedRecord_Matches(t *testing.T) {
	rec := cachedRecord{sizeBytes: 100, lastModified: 200}
	if !rec.matches(100, 200) {
		t.Errorf("expected match")
	}
	if rec.matches(101, 200) || rec.matches(100, 201) {
		t.Errorf("expected mismatch on size or mtime change")
	}
}
