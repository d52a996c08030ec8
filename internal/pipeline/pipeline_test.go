package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/imagecolor"
	"github.com/richienod0llar/chromamood/internal/wada"
)

type stubMatcher struct{}

func (stubMatcher) Closest(ext *imagecolor.Extraction) (wada.Match, error) {
	return wada.Match{PaletteID: "001", PaletteName: "Stub", Distance: 1.5}, nil
}

func stubExtract(pathname string, k, resizeTo int) (*imagecolor.Extraction, error) {
	if pathname == "/corpus/bad.jpg" {
		return nil, errors.New("corrupt image")
	}
	return &imagecolor.Extraction{
		Colors:      []imagecolor.Lab{{L: 50, A: 5, B: -5}},
		Proportions: []float64{1},
	}, nil
}

func testRecords() []dataset.Record {
	return []dataset.Record{
		{Key: "a", Year: 1995, HasImage: true, ImagePath: "/corpus/a.jpg"},
		{Key: "bad", Year: 1995, HasImage: true, ImagePath: "/corpus/bad.jpg"},
		{Key: "no-image", Year: 1996},
		{Key: "b", Year: 1996, HasImage: true, ImagePath: "/corpus/b.jpg"},
	}
}

func TestRun(t *testing.T) {
	p := New(Config{Workers: 3}, stubMatcher{})
	p.extract = stubExtract

	results, err := p.Run(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// input order survives concurrent processing
	if results[0].Key != "a" || results[1].Key != "b" {
		t.Errorf("order mismatch: %s, %s", results[0].Key, results[1].Key)
	}

	if p.Processed() != 2 {
		t.Errorf("expected 2 processed, got %d", p.Processed())
	}
	if p.Failed() != 1 {
		t.Errorf("expected 1 failure, got %d", p.Failed())
	}

	r := results[0]
	if r.PaletteID != "001" || r.PaletteDistance != 1.5 {
		t.Errorf("palette fields not carried: %+v", r)
	}
	if r.MeanLightness != 50 {
		t.Errorf("stats not carried: %+v", r)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Config{Workers: 1}, stubMatcher{})
	p.extract = stubExtract

	if _, err := p.Run(ctx, testRecords()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	p := New(Config{}, stubMatcher{})
	if p.cfg.Workers != 1 {
		t.Errorf("expected 1 worker default, got %d", p.cfg.Workers)
	}
	if p.cfg.Clusters != imagecolor.DefaultClusters {
		t.Errorf("expected default clusters, got %d", p.cfg.Clusters)
	}
	if p.cfg.Resize != imagecolor.DefaultResize {
		t.Errorf("expected default resize, got %d", p.cfg.Resize)
	}
}
