package scrub

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a scroll-scrubbed page. It is usually read from YAML with
// LoadConfig; missing keys keep their DefaultConfig values.
type Config struct {
	Title   string          `yaml:"title"`
	Window  WindowConfig    `yaml:"window"`
	Frames  FrameConfig     `yaml:"frames"`
	Section SectionSettings `yaml:"section"`
	Scroll  ScrollConfig    `yaml:"scroll"`
	Overlay OverlayConfig   `yaml:"overlay"`

	Debug         bool    `yaml:"debug"`
	ShowFPS       bool    `yaml:"show_fps"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
	MemoryBudget  float64 `yaml:"memory_budget"`
}

// WindowConfig sets the initial window size in logical pixels.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FrameConfig locates the frame sequence. BaseURL, when set, fetches over
// HTTP; otherwise frames are read from Template.Dir on disk.
type FrameConfig struct {
	Count       int          `yaml:"count"`
	BaseURL     string       `yaml:"base_url"`
	Template    PathTemplate `yaml:"template"`
	Concurrency int          `yaml:"concurrency"`
}

// SectionSettings tunes the pinned section.
type SectionSettings struct {
	PinViewports      float64 `yaml:"pin_viewports"`
	Scrub             float64 `yaml:"scrub"`
	PlaybackSpan      float64 `yaml:"playback_span"`
	Perspective       float64 `yaml:"perspective"`
	TrailingViewports float64 `yaml:"trailing_viewports"`
}

// ScrollConfig tunes the smooth scroll.
type ScrollConfig struct {
	Duration        float64 `yaml:"duration"`
	WheelMultiplier float64 `yaml:"wheel_multiplier"`
	// KeyStep is the arrow key scroll distance in viewport heights.
	KeyStep float64 `yaml:"key_step"`
}

// OverlayConfig holds the overlay content.
type OverlayConfig struct {
	Nav          string  `yaml:"nav"`
	Headline     string  `yaml:"headline"`
	Outro        string  `yaml:"outro"`
	OutroURL     string  `yaml:"outro_url"`
	NavSize      float64 `yaml:"nav_size"`
	HeadlineSize float64 `yaml:"headline_size"`
	OutroSize    float64 `yaml:"outro_size"`
}

// DefaultConfig returns the settings of the reference page: 207 frames named
// frame_0001.jpg onward in ./frames, pinned for seven viewports.
func DefaultConfig() Config {
	tmpl := DefaultPathTemplate
	tmpl.Dir = "frames"
	return Config{
		Title:  "scrub",
		Window: WindowConfig{Width: 1280, Height: 720},
		Frames: FrameConfig{Count: 207, Template: tmpl},
		Section: SectionSettings{
			PinViewports: DefaultPinViewports,
			Scrub:        1,
			PlaybackSpan: DefaultPlaybackSpan,
			Perspective:  DefaultPerspective,
		},
		Scroll: ScrollConfig{
			Duration:        DefaultScrollDuration,
			WheelMultiplier: 1,
			KeyStep:         0.25,
		},
		Overlay: OverlayConfig{
			Nav:          "Studio      Work      About      Contact",
			Headline:     "Design Engineer for Your Needs",
			Outro:        "Let's build something together",
			NavSize:      18,
			HeadlineSize: 56,
			OutroSize:    40,
		},
		ScreenshotDir: "screenshots",
		MemoryBudget:  DefaultMemoryBudget,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML.
func WriteConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid config: window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Frames.Count <= 0:
		return fmt.Errorf("invalid config: frames.count must be positive, got %d", c.Frames.Count)
	case c.Frames.Template.Digits < 0:
		return fmt.Errorf("invalid config: frames.template.digits must not be negative")
	case c.Frames.Concurrency < 0:
		return fmt.Errorf("invalid config: frames.concurrency must not be negative")
	case c.Section.PinViewports <= 0:
		return fmt.Errorf("invalid config: section.pin_viewports must be positive")
	case c.Section.Scrub < 0:
		return fmt.Errorf("invalid config: section.scrub must not be negative")
	case c.Section.PlaybackSpan <= 0 || c.Section.PlaybackSpan > 1:
		return fmt.Errorf("invalid config: section.playback_span must be in (0, 1], got %g", c.Section.PlaybackSpan)
	case c.Section.Perspective <= 0:
		return fmt.Errorf("invalid config: section.perspective must be positive")
	case c.Section.TrailingViewports < 0:
		return fmt.Errorf("invalid config: section.trailing_viewports must not be negative")
	case c.Scroll.Duration < 0:
		return fmt.Errorf("invalid config: scroll.duration must not be negative")
	case c.MemoryBudget < 0:
		return fmt.Errorf("invalid config: memory_budget must not be negative")
	}
	return nil
}
