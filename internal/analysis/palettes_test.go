package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/wada"
)

func TestDominantPalettePerDecadeResolvesFetchedIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id": "currant-red-etruscan-red", "name": "Currant Red", "colors": ["#9E1B32", "#AF403A"]}
		]`))
	}))
	defer srv.Close()

	set, err := wada.Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	results := []dataset.Result{
		result(1993, "a", "Fall", "currant-red-etruscan-red", 40),
		result(1995, "b", "Spring", "currant-red-etruscan-red", 60),
	}

	got := DominantPalettePerDecade(results, set)
	if len(got) != 1 {
		t.Fatalf("expected 1 decade, got %d", len(got))
	}

	want := []string{"#9E1B32", "#AF403A"}
	if diff := cmp.Diff(want, got[0].Colors); diff != "" {
		t.Errorf("dominant palette swatches (-want +got):\n%s", diff)
	}
}

func TestDominantPalettePerDecadeUnknownID(t *testing.T) {
	set, err := wada.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	results := []dataset.Result{result(2001, "a", "Fall", "not-in-any-set", 40)}

	got := DominantPalettePerDecade(results, set)
	if len(got) != 1 {
		t.Fatalf("expected 1 decade, got %d", len(got))
	}
	if got[0].Colors != nil {
		t.Errorf("unknown id must yield no swatches, got %v", got[0].Colors)
	}
}
