// Package ftsettings loads the user configuration.
package ftsettings

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/filetug/millertug/pkg/fsutils"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidRequiredColumns = errors.New("required_columns must be at least 1")
	ErrInvalidColumnMargin    = errors.New("column_margin must not be negative")
	ErrInvalidPreviewBytes    = errors.New("preview_bytes must not be negative")
	ErrInvalidErrorDisplay    = errors.New("error_display must be positive")
)

const (
	DefaultRequiredColumns = 3
	DefaultColumnMargin    = 0
	DefaultPreviewBytes    = 8 * 1024
	DefaultErrorDisplay    = 5 * time.Second
	DefaultLogLevel        = "info"
)

type Settings struct {
	RequiredColumns int           `yaml:"required_columns"`
	ColumnMargin    int           `yaml:"column_margin"`
	PreviewBytes    int           `yaml:"preview_bytes"`
	ErrorDisplay    time.Duration `yaml:"error_display"`
	LogLevel        string        `yaml:"log_level"`
}

func Defaults() Settings {
	return Settings{
		RequiredColumns: DefaultRequiredColumns,
		ColumnMargin:    DefaultColumnMargin,
		PreviewBytes:    DefaultPreviewBytes,
		ErrorDisplay:    DefaultErrorDisplay,
		LogLevel:        DefaultLogLevel,
	}
}

func (s Settings) Validate() error {
	var errs []error
	if s.RequiredColumns < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidRequiredColumns, s.RequiredColumns))
	}
	if s.ColumnMargin < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidColumnMargin, s.ColumnMargin))
	}
	if s.PreviewBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPreviewBytes, s.PreviewBytes))
	}
	if s.ErrorDisplay <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidErrorDisplay, s.ErrorDisplay))
	}
	return errors.Join(errs...)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	settings := Defaults()
	if err := fsutils.ReadYAMLFile(fsutils.ExpandHome(path), false, &settings); err != nil {
		return Defaults(), fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return settings, nil
}

// Decode overlays YAML from r onto settings and validates the result.
func Decode(r io.Reader, settings *Settings) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return settings.Validate()
}
