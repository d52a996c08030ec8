package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

var mergedHeader = []string{
	"key", "designer", "season", "year", "category", "section",
	"tags", "aesthetic", "image_path", "has_image", "source_folder",
}

// WriteMergedCSV writes the merged dataset in its canonical column order.
func WriteMergedCSV(pathname string, records []Record) error {
	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(mergedHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Key,
			r.Designer,
			r.Season,
			strconv.Itoa(r.Year),
			r.Category,
			r.Section,
			encodeTags(r.Tags),
			formatFloat(r.Aesthetic),
			r.ImagePath,
			strconv.FormatBool(r.HasImage),
			r.SourceFolder,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("unable to write %s: %w", pathname, err)
	}

	return f.Close()
}

// ReadMergedCSV loads a merged dataset CSV. Columns are located by header
// name so reordered or extended files still load.
func ReadMergedCSV(pathname string) ([]Record, error) {
	rows, cols, err := readTable(pathname)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{
			Key:          cols.get(row, "key"),
			Designer:     cols.get(row, "designer"),
			Season:       cols.get(row, "season"),
			Category:     cols.get(row, "category"),
			Section:      cols.get(row, "section"),
			Tags:         DecodeTags(cols.get(row, "tags")),
			Aesthetic:    parseFloat(cols.get(row, "aesthetic")),
			ImagePath:    cols.get(row, "image_path"),
			SourceFolder: cols.get(row, "source_folder"),
		}
		rec.Year, _ = strconv.Atoi(cols.get(row, "year"))
		rec.HasImage, _ = strconv.ParseBool(cols.get(row, "has_image"))
		records = append(records, rec)
	}

	return records, nil
}

// DecodeTags parses a tag list cell. JSON lists are the native encoding but
// python-style reprs with single quotes are tolerated since the corpus
// metadata predates this tool. Malformed cells yield nil rather than an
// error.
func DecodeTags(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "[]" {
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(cell), &tags); err == nil {
		return cleanTags(tags)
	}

	if err := json.Unmarshal([]byte(strings.ReplaceAll(cell, "'", `"`)), &tags); err == nil {
		return cleanTags(tags)
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

type columns map[string]int

func (c columns) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readTable(pathname string) ([][]string, columns, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read %s: %w", pathname, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", pathname)
	}

	cols := make(columns, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}

	return rows[1:], cols, nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}

	encoded, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func cleanTags(tags []string) []string {
	out := tags[:0:0]
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(cell string) float64 {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
