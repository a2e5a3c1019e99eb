package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

const DefaultURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

type Config struct {
	URL              string
	FilePath         string
	UseStdin         bool
	Demo             bool
	PageSize         int
	DebounceMS       int
	FetchTimeoutSec  int
	Theme            Theme
	Offline          bool
	OpenAIModel      string
	OpenAIBase       string
	OpenAITimeoutSec int
	ExportFormat     string
	ExportOut        string
	ShowVersion      bool
	ConfigPath       string

	// Internal
	IsPipedStdin bool
}

// fileConfig mirrors the subset of Config that may be set from a TOML file.
type fileConfig struct {
	URL              string `toml:"url"`
	File             string `toml:"file"`
	PageSize         int    `toml:"page_size"`
	DebounceMS       int    `toml:"debounce_ms"`
	FetchTimeoutSec  int    `toml:"fetch_timeout_sec"`
	Theme            string `toml:"theme"`
	Offline          bool   `toml:"offline"`
	OpenAIModel      string `toml:"openai_model"`
	OpenAIBase       string `toml:"openai_base_url"`
	OpenAITimeoutSec int    `toml:"openai_timeout_sec"`
	Export           string `toml:"export"`
	Out              string `toml:"out"`
}

var stdinPiped = func() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

func Load() (*Config, error) { return LoadArgs(os.Args[1:]) }

// LoadArgs resolves configuration with precedence flags > env > file > defaults.
func LoadArgs(args []string) (*Config, error) {
	cfg := &Config{
		URL:              DefaultURL,
		PageSize:         10,
		DebounceMS:       300,
		FetchTimeoutSec:  15,
		Theme:            ThemeDark,
		OpenAIModel:      "gpt-5-mini",
		OpenAITimeoutSec: 60,
	}
	cfg.IsPipedStdin = stdinPiped()

	cfg.ConfigPath = getenvDefault("ADMINUI_CONFIG", "")
	if p := configPathFromArgs(args); p != "" {
		cfg.ConfigPath = p
	}
	if cfg.ConfigPath != "" {
		if err := cfg.loadFile(cfg.ConfigPath); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	fs := flag.NewFlagSet("adminui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to a TOML config file")
	fs.StringVar(&cfg.URL, "url", cfg.URL, "members endpoint (GET, JSON array)")
	fs.StringVar(&cfg.FilePath, "file", cfg.FilePath, "read members from a local JSON or NDJSON file instead of --url")
	fs.BoolVar(&cfg.UseStdin, "stdin", false, "read members from stdin (default: auto if piped)")
	fs.BoolVar(&cfg.Demo, "demo", false, "use built-in demo members")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page")
	fs.IntVar(&cfg.DebounceMS, "debounce-ms", cfg.DebounceMS, "search debounce in milliseconds")
	fs.IntVar(&cfg.FetchTimeoutSec, "fetch-timeout-sec", cfg.FetchTimeoutSec, "timeout for the initial fetch in seconds")
	theme := string(cfg.Theme)
	fs.StringVar(&theme, "theme", theme, "theme: dark|light")
	fs.BoolVar(&cfg.Offline, "offline", cfg.Offline, "disable OpenAI summaries")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model override")
	fs.StringVar(&cfg.OpenAIBase, "openai-base-url", cfg.OpenAIBase, "OpenAI base URL override")
	fs.IntVar(&cfg.OpenAITimeoutSec, "openai-timeout-sec", cfg.OpenAITimeoutSec, "OpenAI request timeout in seconds")
	fs.StringVar(&cfg.ExportFormat, "export", cfg.ExportFormat, "export format for the [x] key: csv|json|xlsx")
	fs.StringVar(&cfg.ExportOut, "out", cfg.ExportOut, "output path for export")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(strings.ToLower(theme))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Determine input source defaults
	if cfg.UseStdin || (cfg.IsPipedStdin && cfg.FilePath == "" && !cfg.Demo) {
		cfg.UseStdin = true
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ExportFormat != "" && c.ExportOut == "" {
		return errors.New("--export requires --out path")
	}
	switch c.ExportFormat {
	case "", "csv", "json", "xlsx":
	default:
		return fmt.Errorf("unknown export format %q", c.ExportFormat)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce must not be negative, got %d", c.DebounceMS)
	}
	if c.FetchTimeoutSec < 1 {
		c.FetchTimeoutSec = 1
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	setString(&c.URL, fc.URL)
	setString(&c.FilePath, fc.File)
	setInt(&c.PageSize, fc.PageSize)
	setInt(&c.DebounceMS, fc.DebounceMS)
	setInt(&c.FetchTimeoutSec, fc.FetchTimeoutSec)
	if fc.Theme != "" {
		c.Theme = Theme(strings.ToLower(fc.Theme))
	}
	c.Offline = c.Offline || fc.Offline
	setString(&c.OpenAIModel, fc.OpenAIModel)
	setString(&c.OpenAIBase, fc.OpenAIBase)
	setInt(&c.OpenAITimeoutSec, fc.OpenAITimeoutSec)
	setString(&c.ExportFormat, fc.Export)
	setString(&c.ExportOut, fc.Out)
	return nil
}

func (c *Config) applyEnv() {
	c.URL = getenvDefault("ADMINUI_URL", c.URL)
	c.PageSize = getenvDefaultInt("ADMINUI_PAGE_SIZE", c.PageSize)
	c.DebounceMS = getenvDefaultInt("ADMINUI_DEBOUNCE_MS", c.DebounceMS)
	c.FetchTimeoutSec = getenvDefaultInt("ADMINUI_FETCH_TIMEOUT_SEC", c.FetchTimeoutSec)
	c.OpenAIModel = getenvDefault("ADMINUI_OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBase = getenvDefault("ADMINUI_OPENAI_BASE_URL", c.OpenAIBase)
	c.OpenAITimeoutSec = getenvDefaultInt("ADMINUI_OPENAI_TIMEOUT_SEC", c.OpenAITimeoutSec)
}

func configPathFromArgs(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

// Source names where members are loaded from, in the order they are preferred.
func (c *Config) Source() string {
	switch {
	case c.Demo:
		return "demo"
	case c.FilePath != "":
		return "file"
	case c.UseStdin:
		return "stdin"
	default:
		return "url"
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("source=%s url=%s file=%s page-size=%d debounce=%dms theme=%s offline=%v",
		c.Source(), c.URL, c.FilePath, c.PageSize, c.DebounceMS, c.Theme, c.Offline)
}
