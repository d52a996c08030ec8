// Package wada carries Sanzo Wada's historical color palettes and matches
// extracted image colors against them with the CIEDE2000 perceptual distance.
package wada

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/richienod0llar/chromamood/internal/imagecolor"
)

// DefaultSourceURL serves the community-digitized "A Dictionary of Color
// Combinations" dataset.
const DefaultSourceURL = "https://raw.githubusercontent.com/dblodorn/sanzo-wada/master/data.json"

const fetchTimeout = 10 * time.Second

// Color is one palette swatch in every representation the pipeline needs.
type Color struct {
	Hex string
	R   uint8
	G   uint8
	B   uint8
	Lab imagecolor.Lab
}

// Palette is an ordered combination of swatches.
type Palette struct {
	ID           string
	Name         string
	OriginalName string
	Colors       []Color
}

// Set is an ordered collection of palettes. Order is load order and is kept
// stable so distance ties resolve deterministically.
type Set struct {
	Palettes []Palette

	byID map[string]*Palette
}

//go:embed data.json
var embedded []byte

type rawPalette struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// LoadEmbedded builds the Set from the bundled palette subset.
func LoadEmbedded() (*Set, error) {
	return parse(embedded)
}

// Load fetches the full palette dataset from url, falling back to the
// embedded subset when the fetch fails. It never returns an error for a
// network failure, only for undecodable data.
func Load(ctx context.Context, url string) (*Set, error) {
	if url == "" {
		url = DefaultSourceURL
	}

	body, err := fetch(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("unable to fetch palettes: using embedded fallback")
		return LoadEmbedded()
	}

	set, err := parse(body)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("unable to parse palettes: using embedded fallback")
		return LoadEmbedded()
	}

	log.Info().Int("palettes", len(set.Palettes)).Str("url", url).Msg("loaded palettes")
	return set, nil
}

// ByID looks up one palette.
func (s *Set) ByID(id string) *Palette {
	return s.byID[id]
}

// Hexes returns the swatch hex strings of one palette, or nil when unknown.
func (s *Set) Hexes(id string) []string {
	p := s.ByID(id)
	if p == nil {
		return nil
	}

	hexes := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexes[i] = c.Hex
	}
	return hexes
}

//--------------------------------------------------------------------------------
// private

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	// palette data is ~100KB; anything near the limit is wrong
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("unable to read palette data: %w", err)
	}

	return body, nil
}

func parse(data []byte) (*Set, error) {
	var raws []rawPalette
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("unable to decode palette data: %w", err)
	}

	set := &Set{byID: make(map[string]*Palette, len(raws))}

	for _, raw := range raws {
		id := raw.ID
		if id == "" {
			id = raw.Name
		}
		name := raw.Name
		if name == "" {
			name = raw.ID
		}

		p := Palette{
			ID:           id,
			Name:         TranslateName(name),
			OriginalName: name,
			Colors:       make([]Color, 0, len(raw.Colors)),
		}

		for _, hex := range raw.Colors {
			c, err := parseColor(hex)
			if err != nil {
				log.Warn().Err(err).Str("palette", id).Msg("skipping bad swatch")
				continue
			}
			p.Colors = append(p.Colors, c)
		}

		if len(p.Colors) == 0 {
			continue
		}

		set.Palettes = append(set.Palettes, p)
	}

	if len(set.Palettes) == 0 {
		return nil, fmt.Errorf("no usable palettes found in %d records", len(raws))
	}

	for i := range set.Palettes {
		set.byID[set.Palettes[i].ID] = &set.Palettes[i]
	}

	return set, nil
}

func parseColor(hex string) (Color, error) {
	if len(hex) > 0 && hex[0] != '#' {
		hex = "#" + hex
	}

	lab, err := imagecolor.FromHex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("unable to parse swatch %q: %w", hex, err)
	}

	var r, g, b uint8
	_, err = fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return Color{}, fmt.Errorf("unable to parse swatch %q: %w", hex, err)
	}

	return Color{Hex: hex, R: r, G: g, B: b, Lab: lab}, nil
}
