package envutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFileType is returned when the file extension is not recognized.
var ErrUnknownFileType = errors.New("env file doesn't have a known file suffix")

// fileSettings is the layout of JSON and YAML config files: settings live
// under a top-level "env" key.
//
//	env:
//	  PATIENCE_COMPARATOR: natural
//	  LOG_LEVEL: debug
type fileSettings struct {
	Env map[string]string `json:"env" yaml:"env"`
}

// LoadFile reads settings from a .env, .json, .yml or .yaml file. The format is
// picked from the extension (case-insensitive).
func LoadFile(path string) (map[string]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".env":
		return godotenv.Read(path)
	case ".json":
		return decodeFile(path, json.Unmarshal)
	case ".yml", ".yaml":
		return decodeFile(path, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, filepath.Base(path))
	}
}

func decodeFile(path string, unmarshal func([]byte, any) error) (map[string]string, error) {
	bts, err := os.ReadFile(path) // #nosec G304 -- path is the intended file to load
	if err != nil {
		return nil, err
	}

	var settings fileSettings

	if err := unmarshal(bts, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	return settings.Env, nil
}

// WithFile loads path with LoadFile and returns a context carrying its values
// as overrides.
func WithFile(ctx context.Context, path string) (context.Context, error) {
	vars, err := LoadFile(path)
	if err != nil {
		return ctx, err
	}

	return WithEnvOverrides(ctx, vars), nil
}
