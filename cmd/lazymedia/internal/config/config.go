package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultViewportWidth and DefaultViewportHeight size the simulated
	// viewport when a page does not set one.
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// DefaultVideoHeight is the layout height, in pixels, of a player whose
	// height is unset or not expressed in pixels.
	DefaultVideoHeight = 150
)

// Page is a page description read from YAML.
type Page struct {
	Site     SiteConfig     `yaml:"site"`
	Viewport ViewportConfig `yaml:"viewport"`
	Videos   []VideoConfig  `yaml:"videos"`
}

// SiteConfig contains site metadata.
type SiteConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ViewportConfig sizes the simulated viewport.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// VideoConfig describes one lazily loaded video on the page.
type VideoConfig struct {
	Src          string  `yaml:"src"`
	Type         string  `yaml:"type,omitempty"`
	Height       string  `yaml:"height,omitempty"`
	AutoPlay     bool    `yaml:"autoPlay,omitempty"`
	HideControls bool    `yaml:"hideControls,omitempty"`
	Top          float64 `yaml:"top"`
}

// PixelHeight returns the player's layout height. Heights given in px (or
// as a bare number) are used as-is; anything else falls back to
// DefaultVideoHeight.
func (v VideoConfig) PixelHeight() float64 {
	h := strings.TrimSpace(v.Height)
	h = strings.TrimSuffix(h, "px")
	n, err := strconv.ParseFloat(h, 64)
	if err != nil || n <= 0 {
		return DefaultVideoHeight
	}
	return n
}

// Resolved contains a loaded page with defaults applied.
type Resolved struct {
	Path           string
	SiteName       string
	ViewportWidth  float64
	ViewportHeight float64
	Videos         []VideoConfig
}

// Load reads and parses a page file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &page, nil
}

// Resolve loads a page and resolves defaults. The site name defaults to the
// last element of the enclosing Go module's path.
func Resolve(path string) (*Resolved, error) {
	page, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := validate(page); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	siteName := strings.TrimSpace(page.Site.Name)
	if siteName == "" {
		siteName = defaultSiteName(dir)
	}

	width, height := page.Viewport.Width, page.Viewport.Height
	if width <= 0 {
		width = DefaultViewportWidth
	}
	if height <= 0 {
		height = DefaultViewportHeight
	}

	return &Resolved{
		Path:           path,
		SiteName:       siteName,
		ViewportWidth:  width,
		ViewportHeight: height,
		Videos:         page.Videos,
	}, nil
}

// DocumentHeight returns the bottom edge of the lowest video.
func (r *Resolved) DocumentHeight() float64 {
	bottom := 0.0
	for _, v := range r.Videos {
		if b := v.Top + v.PixelHeight(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

func validate(page *Page) error {
	for i, v := range page.Videos {
		if strings.TrimSpace(v.Src) == "" {
			return fmt.Errorf("videos[%d]: src is required", i)
		}
		if v.Top < 0 {
			return fmt.Errorf("videos[%d]: top cannot be negative (%v)", i, v.Top)
		}
	}
	return nil
}

// FindModuleRoot walks up from dir to find go.mod.
func FindModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", errors.New("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultSiteName(dir string) string {
	base := filepath.Base(dir)
	if root, err := FindModuleRoot(dir); err == nil {
		if modPath, err := modulePath(root); err == nil {
			prefix, _, ok := module.SplitPathVersion(modPath)
			if ok {
				parts := strings.Split(prefix, "/")
				base = parts[len(parts)-1]
			}
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "docs"
	}
	return base
}
