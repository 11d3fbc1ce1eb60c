// Package config parses runtime configuration from CLI flags with
// environment-variable fallbacks.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/marquee-tui/marquee/internal/app"
	"github.com/marquee-tui/marquee/internal/catalog"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envCatalogURL  = "MARQUEE_CATALOG_URL"
	envSetURL      = "MARQUEE_SETS_URL"
	envWidth       = "MARQUEE_WIDTH"
	envHeight      = "MARQUEE_HEIGHT"
	envFrameMS     = "MARQUEE_FRAME_MS"
	envClampCursor = "MARQUEE_CLAMP_CURSOR"
	envVerbose     = "MARQUEE_VERBOSE"
	envTrace       = "MARQUEE_TRACE"
	envLogFile     = "MARQUEE_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("marquee", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	catalogURL := fs.String("catalog-url", envOrDefault(env, envCatalogURL, catalog.DefaultHomeURL), "URL of the home catalog document")
	setURL := fs.String("sets-url", envOrDefault(env, envSetURL, catalog.DefaultSetURLTemplate), "URL template for row set documents (%s is replaced by the refId)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "viewport height in rows (0 uses terminal height)")
	frameMS := fs.Int("frame-ms", envOrInt(env, envFrameMS, 33), "animation frame interval in milliseconds")
	clamp := fs.Bool("clamp-cursor", envOrBool(env, envClampCursor, false), "keep the selection cursor inside loaded content bounds")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show fetch status detail in the footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *frameMS <= 0 {
		return Config{}, fmt.Errorf("frame-ms must be > 0 (got %d)", *frameMS)
	}
	if strings.Count(*setURL, "%s") != 1 {
		return Config{}, fmt.Errorf("sets-url must contain exactly one %%s placeholder")
	}

	cfg := Config{
		App: app.Config{
			CatalogURL:     *catalogURL,
			SetURLTemplate: *setURL,
			Width:          *width,
			Height:         *height,
			FrameMS:        *frameMS,
			ClampCursor:    *clamp,
			Verbose:        *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"catalog-url":  *catalogURL,
			"sets-url":     *setURL,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"frame-ms":     strconv.Itoa(*frameMS),
			"clamp-cursor": strconv.FormatBool(*clamp),
			"verbose":      strconv.FormatBool(*verbose),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
