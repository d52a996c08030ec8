package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ScanFolder reads every *.json metadata file in dir and pairs each with its
// sibling image file. Individual bad files are logged and skipped.
func ScanFolder(dir string) ([]Record, error) {
	metaPaths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("unable to scan %s: %w", dir, err)
	}

	records := make([]Record, 0, len(metaPaths))

	for _, metaPath := range metaPaths {
		rec, err := readRecord(metaPath)
		if err != nil {
			log.Warn().Err(err).Str("file", metaPath).Msg("skipping metadata file")
			continue
		}

		rec.MetaPath = metaPath
		rec.SourceFolder = filepath.Base(dir)

		imagePath := strings.TrimSuffix(metaPath, ".json") + ".jpg"
		if _, err := os.Stat(imagePath); err == nil {
			rec.ImagePath = imagePath
			rec.HasImage = true
		}

		records = append(records, rec)
	}

	log.Info().Str("dir", dir).Int("records", len(records)).Msg("scanned corpus folder")
	return records, nil
}

// Merge scans each corpus folder and returns all records in canonical order.
func Merge(dirs []string) ([]Record, error) {
	var all []Record

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			log.Warn().Str("dir", dir).Msg("corpus folder does not exist")
			continue
		}

		records, err := ScanFolder(dir)
		if err != nil {
			return nil, err
		}

		all = append(all, records...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no metadata found in any of %d folders", len(dirs))
	}

	SortRecords(all)
	return all, nil
}

func readRecord(pathname string) (Record, error) {
	rec := Record{Aesthetic: math.NaN()}

	content, err := os.ReadFile(pathname)
	if err != nil {
		return rec, fmt.Errorf("unable to read %s: %w", pathname, err)
	}

	if err := json.Unmarshal(content, &rec); err != nil {
		return rec, fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	if rec.Key == "" {
		rec.Key = strings.TrimSuffix(filepath.Base(pathname), ".json")
	}

	return rec, nil
}
