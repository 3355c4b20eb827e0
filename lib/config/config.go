// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/scionic/lib/chunk"
	"github.com/bureau-foundation/scionic/lib/compress"
	"github.com/bureau-foundation/scionic/lib/digest"
	"github.com/bureau-foundation/scionic/lib/sealed"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "SCIONIC_CONFIG"

// Config is the configuration for building, verifying and exporting
// graphs.
type Config struct {
	// ChunkSize is the maximum number of content bytes per leaf.
	// Larger files are split into Chunk leaves of this size.
	// Default: 2 MiB.
	ChunkSize int `yaml:"chunk_size"`

	// Digest is the digest algorithm: sha256 or blake3.
	// Default: sha256.
	Digest string `yaml:"digest"`

	// Encoding is the multibase encoding for digest text, by name
	// (base64, base32, base58btc, ...). Default: base64.
	Encoding string `yaml:"encoding"`

	// VerifyWorkers is the number of leaves verified concurrently.
	// Values below 2 verify sequentially. Default: 1.
	VerifyWorkers int `yaml:"verify_workers"`

	// Export configures graph export files.
	Export ExportConfig `yaml:"export"`

	// Identity is the path of the age identity file used to read
	// encrypted exports. Supports ${HOME} expansion.
	Identity string `yaml:"identity"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// ExportConfig configures graph export files.
type ExportConfig struct {
	// Format is the payload format: cbor or json. Default: cbor.
	Format string `yaml:"format"`

	// Compression is none, lz4, zstd or auto. Default: zstd.
	Compression string `yaml:"compression"`

	// Recipients are age public keys every export is encrypted to.
	// Empty means exports are written in the clear.
	Recipients []string `yaml:"recipients"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is debug, info, warn or error. Default: warn.
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ChunkSize:     chunk.DefaultSize,
		Digest:        string(digest.SHA256),
		Encoding:      digest.DefaultEncoding,
		VerifyWorkers: 1,
		Export: ExportConfig{
			Format:      "cbor",
			Compression: "zstd",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by SCIONIC_CONFIG, or
// returns [Default] when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Values in
// the file replace the defaults; keys absent from the file keep them.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.parse(path, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// parse decodes data into c. JSON is a subset of YAML, so JSONC files
// are stripped to plain JSON and go through the same decoder.
func (c *Config) parse(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	c.Identity = expandVars(c.Identity)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

var (
	exportFormats = []string{"cbor", "json"}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}
	if _, err := digest.ParseAlgorithm(c.Digest); err != nil {
		errs = append(errs, fmt.Errorf("digest: %w", err))
	}
	if _, err := digest.NewEncoding(c.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("encoding: %w", err))
	}
	if c.VerifyWorkers < 0 {
		errs = append(errs, fmt.Errorf("verify_workers must not be negative, got %d", c.VerifyWorkers))
	}
	if !slices.Contains(exportFormats, c.Export.Format) {
		errs = append(errs, fmt.Errorf("export.format must be one of: %v", exportFormats))
	}
	if c.Export.Compression != compress.Auto {
		if _, err := compress.Parse(c.Export.Compression); err != nil {
			errs = append(errs, fmt.Errorf("export.compression: %w", err))
		}
	}
	for _, recipient := range c.Export.Recipients {
		if err := sealed.ParsePublicKey(recipient); err != nil {
			errs = append(errs, fmt.Errorf("export.recipients: %w", err))
		}
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}

	return errors.Join(errs...)
}

// Scheme returns the digest algorithm and encoding named by the
// configuration.
func (c *Config) Scheme() (digest.Algorithm, digest.Encoding, error) {
	algorithm, err := digest.ParseAlgorithm(c.Digest)
	if err != nil {
		return "", digest.Encoding{}, err
	}
	encoding, err := digest.NewEncoding(c.Encoding)
	if err != nil {
		return "", digest.Encoding{}, err
	}
	return algorithm, encoding, nil
}

// LogLevel returns the configured log level. Unknown names map to
// warn; Validate reports them.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return level
}
