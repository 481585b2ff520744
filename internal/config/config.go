package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"elrs-hud/hud"
)

// Output views for the rendered grid.
const (
	ViewNone     = "none"
	ViewTerminal = "terminal"
	ViewWindow   = "window"
)

// Config is the on-disk configuration of the HUD and its plumbing. Every
// field is optional; the Get* methods supply defaults for anything left out.
type Config struct {
	// Grid and camera
	Rows                *int    `json:"rows,omitempty"`
	Columns             *int    `json:"columns,omitempty"`
	FOV                 *int    `json:"fov,omitempty"`          // diagonal, degrees
	Aspect              *string `json:"aspect,omitempty"`       // "4:3", "16:9", ...
	CharAspect          *string `json:"char_aspect,omitempty"`  // pixel width:height of a cell
	RollStallDegrees    *int    `json:"roll_stall_degrees,omitempty"`
	RollVerticalDegrees *int    `json:"roll_vertical_degrees,omitempty"`
	StabilizeBelow      *int    `json:"stabilize_below,omitempty"`

	// Layout in drawing order; empty keeps the built-in layout.
	Widgets []WidgetConfig `json:"widgets,omitempty"`

	// Symbol name to font code overrides, e.g. {"antenna": 1}.
	Symbols map[string]int `json:"symbols,omitempty"`

	// Telemetry source
	GRPCAddr *string `json:"grpc_addr,omitempty"`
	Simulate *bool   `json:"simulate,omitempty"`

	// Outputs
	SerialPort *string `json:"serial_port,omitempty"`
	BaudRate   *int    `json:"baud_rate,omitempty"`
	View       *string `json:"view,omitempty"`
	FPS        *int    `json:"fps,omitempty"`
	LogFile    *string `json:"log_file,omitempty"`
}

// WidgetConfig places one widget, e.g. {"kind": "speed", "align": "left"}.
type WidgetConfig struct {
	Kind  string `json:"kind"`
	Align string `json:"align"`
}

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }
func ptrBool(v bool) *bool       { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Default returns a Config with every scalar field set to its default.
func Default() *Config {
	opts := hud.DefaultOptions()
	return &Config{
		Rows:                ptrInt(opts.Rows),
		Columns:             ptrInt(opts.Columns),
		FOV:                 ptrInt(opts.FOV),
		Aspect:              ptrString(opts.Aspect.String()),
		CharAspect:          ptrString(opts.CharAspect.String()),
		RollStallDegrees:    ptrInt(opts.RollStallDegrees),
		RollVerticalDegrees: ptrInt(opts.RollVerticalDegrees),
		StabilizeBelow:      ptrInt(int(opts.StabilizeBelow)),
		GRPCAddr:            ptrString(defaultGRPCAddr),
		Simulate:            ptrBool(false),
		SerialPort:          ptrString(""),
		BaudRate:            ptrInt(defaultBaudRate),
		View:                ptrString(ViewNone),
		FPS:                 ptrInt(defaultFPS),
		LogFile:             ptrString(""),
	}
}

const (
	defaultGRPCAddr = "localhost:10000"
	defaultBaudRate = 115200
	defaultFPS      = 10
	maxFPS          = 60
	maxFileSize     = 1 * 1024 * 1024
)

// Load reads a Config from a .json file of at most 1MB and validates it.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every set field in isolation. Whether the widgets fit
// on the grid is decided by hud.New.
func (c *Config) Validate() error {
	if c.Rows != nil && *c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", *c.Rows)
	}
	if c.Columns != nil && *c.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", *c.Columns)
	}
	if c.FOV != nil && (*c.FOV <= 0 || *c.FOV >= 360) {
		return fmt.Errorf("fov must be between 1 and 359, got %d", *c.FOV)
	}
	if c.Aspect != nil {
		if _, err := hud.ParseAspectRatio(*c.Aspect); err != nil {
			return fmt.Errorf("invalid aspect: %w", err)
		}
	}
	if c.CharAspect != nil {
		if _, err := hud.ParseAspectRatio(*c.CharAspect); err != nil {
			return fmt.Errorf("invalid char_aspect: %w", err)
		}
	}
	if c.StabilizeBelow != nil && (*c.StabilizeBelow < 0 || *c.StabilizeBelow > 0xffff) {
		return fmt.Errorf("stabilize_below must be between 0 and 65535, got %d", *c.StabilizeBelow)
	}
	for i, w := range c.Widgets {
		if _, err := w.spec(); err != nil {
			return fmt.Errorf("widgets[%d]: %w", i, err)
		}
	}
	for name, code := range c.Symbols {
		if _, err := hud.ParseSymbol(name); err != nil {
			return fmt.Errorf("symbols: %w", err)
		}
		if code < 1 || code > 255 {
			return fmt.Errorf("symbols: code for %s must be between 1 and 255, got %d", name, code)
		}
		if code >= ' ' && code <= '~' {
			return fmt.Errorf("symbols: code for %s must not be printable ASCII (32 to 126), got %d", name, code)
		}
	}
	if len(c.Symbols) > 0 {
		symbols, err := c.SymbolTable()
		if err != nil {
			return err
		}
		if err := symbols.Validate(); err != nil {
			return fmt.Errorf("symbols: %w", err)
		}
	}
	if c.BaudRate != nil && *c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", *c.BaudRate)
	}
	if c.FPS != nil && (*c.FPS <= 0 || *c.FPS > maxFPS) {
		return fmt.Errorf("fps must be between 1 and %d, got %d", maxFPS, *c.FPS)
	}
	if c.View != nil {
		switch *c.View {
		case ViewNone, ViewTerminal, ViewWindow:
		default:
			return fmt.Errorf("view must be %q, %q or %q, got %q", ViewNone, ViewTerminal, ViewWindow, *c.View)
		}
	}
	return nil
}

func (w WidgetConfig) spec() (hud.WidgetSpec, error) {
	kind, err := hud.ParseWidgetKind(w.Kind)
	if err != nil {
		return hud.WidgetSpec{}, err
	}
	align, err := hud.ParseAlign(w.Align)
	if err != nil {
		return hud.WidgetSpec{}, err
	}
	return hud.WidgetSpec{Kind: kind, Align: align}, nil
}

// Options converts the grid, camera and layout settings for hud.New.
func (c *Config) Options() (hud.Options, error) {
	opts := hud.DefaultOptions()
	if c.Rows != nil {
		opts.Rows = *c.Rows
	}
	if c.Columns != nil {
		opts.Columns = *c.Columns
	}
	if c.FOV != nil {
		opts.FOV = *c.FOV
	}
	if c.Aspect != nil {
		a, err := hud.ParseAspectRatio(*c.Aspect)
		if err != nil {
			return hud.Options{}, fmt.Errorf("invalid aspect: %w", err)
		}
		opts.Aspect = a
	}
	if c.CharAspect != nil {
		a, err := hud.ParseAspectRatio(*c.CharAspect)
		if err != nil {
			return hud.Options{}, fmt.Errorf("invalid char_aspect: %w", err)
		}
		opts.CharAspect = a
	}
	if c.RollStallDegrees != nil {
		opts.RollStallDegrees = *c.RollStallDegrees
	}
	if c.RollVerticalDegrees != nil {
		opts.RollVerticalDegrees = *c.RollVerticalDegrees
	}
	if c.StabilizeBelow != nil {
		opts.StabilizeBelow = uint16(*c.StabilizeBelow)
	}
	for i, w := range c.Widgets {
		spec, err := w.spec()
		if err != nil {
			return hud.Options{}, fmt.Errorf("widgets[%d]: %w", i, err)
		}
		opts.Widgets = append(opts.Widgets, spec)
	}
	return opts, nil
}

// SymbolTable returns the default table with the configured overrides.
func (c *Config) SymbolTable() (*hud.SymbolTable, error) {
	codes := make(map[hud.Symbol]byte, len(c.Symbols))
	for name, code := range c.Symbols {
		s, err := hud.ParseSymbol(name)
		if err != nil {
			return nil, fmt.Errorf("symbols: %w", err)
		}
		codes[s] = byte(code)
	}
	return hud.NewSymbolTable(codes), nil
}

// GetGRPCAddr returns the ground station address or the default.
func (c *Config) GetGRPCAddr() string {
	if c.GRPCAddr == nil || *c.GRPCAddr == "" {
		return defaultGRPCAddr
	}
	return *c.GRPCAddr
}

// GetSimulate reports whether to fly the built-in simulator instead of
// connecting to a ground station.
func (c *Config) GetSimulate() bool {
	if c.Simulate == nil {
		return false
	}
	return *c.Simulate
}

// GetSerialPort returns the DisplayPort serial device, empty for none.
func (c *Config) GetSerialPort() string {
	if c.SerialPort == nil {
		return ""
	}
	return *c.SerialPort
}

func (c *Config) GetBaudRate() int {
	if c.BaudRate == nil {
		return defaultBaudRate
	}
	return *c.BaudRate
}

func (c *Config) GetView() string {
	if c.View == nil || *c.View == "" {
		return ViewNone
	}
	return *c.View
}

func (c *Config) GetFPS() int {
	if c.FPS == nil {
		return defaultFPS
	}
	return *c.FPS
}

func (c *Config) GetLogFile() string {
	if c.LogFile == nil {
		return ""
	}
	return *c.LogFile
}
