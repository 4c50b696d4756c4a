package pixelize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bodgit/pixelize/adjust"
	"github.com/bodgit/pixelize/filter"
)

// DefaultDisplaySize is the side of the square preview canvas
const DefaultDisplaySize = 560

// Request describes a single render
type Request struct {
	ImageDataURL string `json:"image_data_url,omitempty" toml:"image_data_url"`
	GridWidth    int    `json:"grid_width" toml:"grid_width"`
	GridHeight   int    `json:"grid_height" toml:"grid_height"`
	// GridValue, if it parses as "N" or "NxM", overrides GridWidth and
	// GridHeight
	GridValue   string `json:"grid_value,omitempty" toml:"grid_value"`
	Algorithm   string `json:"algorithm" toml:"algorithm"`
	PaletteName string `json:"palette_name,omitempty" toml:"palette_name"`
	// PaletteColors, if not empty, is used instead of the named palette
	PaletteColors []string `json:"palette_colors,omitempty" toml:"palette_colors"`
	DisplaySize   int      `json:"display_size,omitempty" toml:"display_size"`

	adjust.Options
}

// FilterRequest describes a run of the filter chain
type FilterRequest struct {
	ImageDataURL string        `json:"image_data_url" toml:"image_data_url"`
	DisplaySize  int           `json:"display_size,omitempty" toml:"display_size"`
	Steps        []filter.Step `json:"steps" toml:"steps"`
}

func displaySize(n int) int {
	if n <= 0 {
		return DefaultDisplaySize
	}
	return n
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func parseGridValue(s string) (int, int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if a, b, ok := strings.Cut(s, "x"); ok {
		w, err := strconv.ParseUint(strings.TrimSpace(a), 10, 31)
		if err != nil {
			return 0, 0, false
		}
		h, err := strconv.ParseUint(strings.TrimSpace(b), 10, 31)
		if err != nil {
			return 0, 0, false
		}
		return atLeastOne(int(w)), atLeastOne(int(h)), true
	}

	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, 0, false
	}
	return atLeastOne(int(n)), atLeastOne(int(n)), true
}

// ResolveGrid returns the dimensions of the working grid for req
func ResolveGrid(req Request) (int, int) {
	if w, h, ok := parseGridValue(req.GridValue); ok {
		return w, h
	}
	return atLeastOne(req.GridWidth), atLeastOne(req.GridHeight)
}

// LoadRequest reads a Request from a TOML or JSON file, chosen by extension
func LoadRequest(file string) (Request, error) {
	var req Request

	b, err := os.ReadFile(file)
	if err != nil {
		return req, err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		if _, err := toml.Decode(string(b), &req); err != nil {
			return req, err
		}
	case ".json":
		if err := json.Unmarshal(b, &req); err != nil {
			return req, err
		}
	default:
		return req, fmt.Errorf("unsupported request file: %s", file)
	}

	return req, nil
}
