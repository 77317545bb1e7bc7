package config

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"io/fs"
	"path/filepath"
	"strings"
)

const AppName = "musiccleanup"

// FileName is looked up below the XDG config directories.
var FileName = filepath.Join(AppName, "config.toml")

type Matching struct {
	Strategy  string `toml:"strategy" validate:"oneof=exact fuzzy"`
	Threshold int    `toml:"threshold" validate:"min=1,max=100"`
}

type Values struct {
	DebugLogging bool     `toml:"debug_logging"`
	Matching     Matching `toml:"matching"`
}

func Defaults() Values {
	return Values{
		Matching: Matching{
			Strategy:  "exact",
			Threshold: 75,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Find returns the path of the first config file in the XDG search path, or an empty string if there is none.
func Find() string {
	path, err := xdg.SearchConfigFile(FileName)
	if err != nil {
		return ""
	}
	return path
}

// Load reads the TOML file at path on top of the defaults. An empty path yields the defaults.
func Load(fsys afero.Fs, path string) (Values, error) {
	vals := Defaults()
	if path == "" {
		return vals, nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return vals, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return vals, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &vals); err != nil {
		return Defaults(), fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := vals.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid config file %s: %w", path, err)
	}
	log.Debug().Str("path", path).Interface("values", vals).Msg("config loaded")
	return vals, nil
}

func (v Values) Validate() error {
	err := validate.Struct(v)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s fails %s=%s (got %v)",
			strings.ToLower(fieldErr.Namespace()), fieldErr.Tag(), fieldErr.Param(), fieldErr.Value()))
	}
	return errors.New(strings.Join(problems, "; "))
}
