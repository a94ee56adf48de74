package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
)

var header = []string{"Ticker", "Company", "Sector", "Country", "Index"}

// Store writes per-index CSV snapshots and prunes old ones.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// FilePath returns the snapshot path for an index.
func (s *Store) FilePath(indexName string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_companies.csv", indexName))
}

// Write saves the extracted records for one index, replacing any
// previous snapshot.
func (s *Store) Write(indexName string, records []extract.CanonicalRecord) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	path := s.FilePath(indexName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Ticker, rec.Company, rec.Sector, rec.Country, indexName}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	return path, nil
}

// Read loads a snapshot back into canonical records. Used by the
// backfill command.
func (s *Store) Read(indexName string) ([]extract.CanonicalRecord, error) {
	path := s.FilePath(indexName)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty snapshot", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(name)] = i
	}
	for _, required := range []string{"ticker", "company"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("read %s: missing %q column", path, required)
		}
	}

	records := make([]extract.CanonicalRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, extract.CanonicalRecord{
			Ticker:  cell(row, col, "ticker"),
			Company: cell(row, col, "company"),
			Sector:  cell(row, col, "sector"),
			Country: cell(row, col, "country"),
		})
	}
	return records, nil
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// DeleteOlderThan removes CSV snapshots whose modification time is
// older than the given number of days. Returns how many were deleted.
func (s *Store) DeleteOlderThan(days int) (int, error) {
	log := logger.With("csvstore")
	cutoff := time.Now().AddDate(0, 0, -days)

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		log.Warn().Str("dir", s.dir).Msg("data dir does not exist, nothing to clean")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("failed to delete old snapshot")
			continue
		}
		log.Info().Str("file", path).Msg("deleted old snapshot")
		deleted++
	}
	return deleted, nil
}
