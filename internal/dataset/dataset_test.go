package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeMeta(t *testing.T, dir, name, content string, withImage bool) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if withImage {
		if err := os.WriteFile(filepath.Join(dir, name+".jpg"), []byte("not a real jpeg"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMerge(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	writeMeta(t, dirA, "img1",
		`{"key":"img1","designer":"Chanel","season":"Fall","year":1995,"category":"Ready-to-Wear"}`, true)
	writeMeta(t, dirA, "img2",
		`{"key":"img2","designer":"Dior","season":"Spring","year":1995}`, false)
	writeMeta(t, dirB, "img3",
		`{"key":"img3","designer":"Prada","season":"Fall","year":1990,"aesthetic":5.5}`, true)
	writeMeta(t, dirA, "broken", `{"key": not json`, false)

	records, err := Merge([]string{dirA, dirB, filepath.Join(dirA, "missing")})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	// the broken file is skipped, the missing folder ignored
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	gotKeys := []string{records[0].Key, records[1].Key, records[2].Key}
	wantKeys := []string{"img3", "img2", "img1"} // 1990 first, then Spring before Fall
	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	if !records[2].HasImage || records[2].ImagePath == "" {
		t.Error("img1 should have its sibling image")
	}
	if records[1].HasImage {
		t.Error("img2 has no image on disk")
	}
	if got := records[0].Aesthetic; got != 5.5 {
		t.Errorf("img3 aesthetic: expected 5.5, got %g", got)
	}
	if !math.IsNaN(records[1].Aesthetic) {
		t.Errorf("missing aesthetic should stay NaN, got %g", records[1].Aesthetic)
	}
}

func TestMergeNoMetadata(t *testing.T) {
	if _, err := Merge([]string{t.TempDir()}); err == nil {
		t.Error("expected an error when no folder has metadata")
	}
}

func TestMergedCSVRoundTrip(t *testing.T) {
	records := []Record{
		{Key: "a", Designer: "Chanel", Season: "Fall", Year: 1995,
			Category: "Ready-to-Wear", Section: "atmosphere",
			Tags: []string{"dress", "red carpet"}, Aesthetic: 5.25,
			ImagePath: "/corpus/a.jpg", HasImage: true, SourceFolder: "corpus"},
		{Key: "b", Designer: "Dior", Season: "Spring", Year: 2001,
			Aesthetic: math.NaN()},
	}

	pathname := filepath.Join(t.TempDir(), "merged.csv")
	if err := WriteMergedCSV(pathname, records); err != nil {
		t.Fatalf("WriteMergedCSV: %v", err)
	}

	got, err := ReadMergedCSV(pathname)
	if err != nil {
		t.Fatalf("ReadMergedCSV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	if got[0].Key != "a" || got[0].Year != 1995 || !got[0].HasImage {
		t.Errorf("first record mismatch: %+v", got[0])
	}
	if diff := cmp.Diff(records[0].Tags, got[0].Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if !math.IsNaN(got[1].Aesthetic) {
		t.Errorf("empty aesthetic cell should read back NaN, got %g", got[1].Aesthetic)
	}
}

func TestDecodeTags(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"json list", `["dress","red carpet"]`, []string{"dress", "red carpet"}},
		{"single quoted list", `['dress', 'red carpet']`, []string{"dress", "red carpet"}},
		{"empty", "", nil},
		{"malformed", `[unterminated`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeTags(tc.cell)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("DecodeTags(%q) mismatch (-want +got):\n%s", tc.cell, diff)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	records := []Record{
		{Key: "a", Designer: "Chanel", Season: "Fall", Category: "Couture", Year: 1980, Aesthetic: 4},
		{Key: "b", Designer: "Comme des Garçons", Season: "Spring", Category: "Ready-to-Wear", Year: 1999, Aesthetic: 6, HasImage: true, ImagePath: "b.jpg"},
		{Key: "c", Designer: "Chloé", Season: "Fall", Category: "Ready-to-Wear", Year: 2010, Aesthetic: math.NaN()},
	}

	if got := FilterYears(records, 1988, 2025); len(got) != 2 {
		t.Errorf("FilterYears: expected 2, got %d", len(got))
	}
	if got := FilterHasImage(records); len(got) != 1 || got[0].Key != "b" {
		t.Errorf("FilterHasImage: unexpected %v", got)
	}
	if got := FilterDesigner(records, "ch"); len(got) != 2 {
		t.Errorf("FilterDesigner: expected Chanel and Chloé, got %d", len(got))
	}
	if got := FilterSeason(records, "Fall"); len(got) != 2 {
		t.Errorf("FilterSeason: expected 2, got %d", len(got))
	}
	if got := FilterCategory(records, "Couture"); len(got) != 1 {
		t.Errorf("FilterCategory: expected 1, got %d", len(got))
	}
	if got := FilterAesthetic(records, 5, 10); len(got) != 1 || got[0].Key != "b" {
		t.Errorf("FilterAesthetic: unexpected %v", got)
	}
}

func TestSampleDeterministic(t *testing.T) {
	var records []Record
	for i := 0; i < 100; i++ {
		records = append(records, Record{Key: string(rune('a' + i%26))})
	}

	first := Sample(records, 10, 42)
	second := Sample(records, 10, 42)

	if len(first) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed must give the same sample (-first +second):\n%s", diff)
	}

	if got := Sample(records, 200, 42); len(got) != len(records) {
		t.Errorf("oversampling should return the full input, got %d", len(got))
	}
}
