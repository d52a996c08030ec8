// Package pipeline fans the per-image color work out across a bounded set of
// workers and collects results in the input order.
package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"

	"github.com/richienod0llar/chromamood/internal/dataset"
	"github.com/richienod0llar/chromamood/internal/imagecolor"
	"github.com/richienod0llar/chromamood/internal/wada"
	"github.com/richienod0llar/chromamood/pkg/util"
)

// Matcher finds the closest reference palette for an extraction. *wada.Set
// satisfies it.
type Matcher interface {
	Closest(ext *imagecolor.Extraction) (wada.Match, error)
}

// Config controls one batch run.
type Config struct {
	Workers  int
	Clusters int
	Resize   int
	Progress bool
}

// Pipeline runs color extraction and palette matching over a record batch.
type Pipeline struct {
	cfg     Config
	matcher Matcher

	// extract is swappable for tests.
	extract func(pathname string, k, resizeTo int) (*imagecolor.Extraction, error)

	processed atomic.Int64
	failed    atomic.Int64
}

func New(cfg Config, matcher Matcher) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Clusters < 1 {
		cfg.Clusters = imagecolor.DefaultClusters
	}
	if cfg.Resize < 1 {
		cfg.Resize = imagecolor.DefaultResize
	}

	return &Pipeline{
		cfg:     cfg,
		matcher: matcher,
		extract: imagecolor.ExtractFile,
	}
}

// Processed reports how many images produced a result so far.
func (p *Pipeline) Processed() int64 { return p.processed.Load() }

// Failed reports how many images were skipped after an extraction or matching
// error.
func (p *Pipeline) Failed() int64 { return p.failed.Load() }

// Run processes every record with an image and returns one result per
// processed image, ordered like the input. Records that fail are logged and
// skipped; the run itself only fails when the context is canceled.
func (p *Pipeline) Run(ctx context.Context, records []dataset.Record) ([]dataset.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var bar *progressbar.ProgressBar
	if p.cfg.Progress {
		bar = progressbar.Default(int64(len(records)), "analyzing")
	}

	indexed := make(chan int)
	slots := make([]*dataset.Result, len(records))

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer util.LogRecover()

			for idx := range indexed {
				slots[idx] = p.processOne(records[idx])
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

feed:
	for i := range records {
		select {
		case <-ctx.Done():
			break feed
		case indexed <- i:
		}
	}
	close(indexed)
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]dataset.Result, 0, len(records))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	log.Info().
		Int("records", len(records)).
		Int64("processed", p.processed.Load()).
		Int64("failed", p.failed.Load()).
		Msg("analysis complete")

	return results, nil
}

func (p *Pipeline) processOne(rec dataset.Record) *dataset.Result {
	if !rec.HasImage {
		return nil
	}

	ext, err := p.extract(rec.ImagePath, p.cfg.Clusters, p.cfg.Resize)
	if err != nil {
		p.failed.Inc()
		log.Warn().Err(err).Str("key", rec.Key).Str("image", rec.ImagePath).
			Msg("unable to extract colors")
		return nil
	}

	match, err := p.matcher.Closest(ext)
	if err != nil {
		p.failed.Inc()
		log.Warn().Err(err).Str("key", rec.Key).Msg("unable to match palette")
		return nil
	}

	stats := ext.Stats()
	p.processed.Inc()

	return &dataset.Result{
		Key:             rec.Key,
		Designer:        rec.Designer,
		Year:            rec.Year,
		Season:          rec.Season,
		Category:        rec.Category,
		ImagePath:       rec.ImagePath,
		PaletteID:       match.PaletteID,
		PaletteName:     match.PaletteName,
		PaletteDistance: match.Distance,
		MeanLightness:   stats.MeanLightness,
		MeanA:           stats.MeanA,
		MeanB:           stats.MeanB,
		MeanSaturation:  stats.MeanSaturation,
		ColorDiversity:  stats.Diversity,
	}
}
