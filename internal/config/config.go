package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/FlameInTheDark/uwuweather/internal/place"
	"github.com/FlameInTheDark/uwuweather/internal/units"
)

var validate = validator.New()

type Config struct {
	GeocodingURL string        `yaml:"geocodingURL" env:"UWUWEATHER_GEOCODING_URL" env-default:"https://geocoding-api.open-meteo.com/v1" validate:"required,url"`
	ForecastURL  string        `yaml:"forecastURL" env:"UWUWEATHER_FORECAST_URL" env-default:"https://api.open-meteo.com/v1" validate:"required,url"`
	Language     string        `yaml:"language" env:"UWUWEATHER_LANGUAGE" env-default:"en" validate:"required,alpha,min=2,max=3"`
	HTTPTimeout  time.Duration `yaml:"httpTimeout" env:"UWUWEATHER_HTTP_TIMEOUT" env-default:"10s" validate:"gt=0"`

	StateFile string `yaml:"stateFile" env:"UWUWEATHER_STATE_FILE" env-default:"./uwuweather.json" validate:"required"`
	StateDir  string `yaml:"stateDir" env:"UWUWEATHER_STATE_DIR" env-default:"./state" validate:"required"`

	Units           string          `yaml:"units" env:"UWUWEATHER_UNITS" env-default:"metric" validate:"oneof=metric imperial"`
	DefaultLocation DefaultLocation `yaml:"defaultLocation"`

	Token   string `yaml:"token" env:"DISCORD_TOKEN"`
	MCPAddr string `yaml:"mcpAddr" env:"UWUWEATHER_MCP_ADDR" env-default:":8089" validate:"required"`
}

type DefaultLocation struct {
	Label string  `yaml:"label" env:"UWUWEATHER_DEFAULT_LABEL" env-default:"Singapore, SG" validate:"required"`
	Lat   float64 `yaml:"lat" env:"UWUWEATHER_DEFAULT_LAT" env-default:"1.2899" validate:"gte=-90,lte=90"`
	Lon   float64 `yaml:"lon" env:"UWUWEATHER_DEFAULT_LON" env-default:"103.8517" validate:"gte=-180,lte=180"`
}

func (d DefaultLocation) Location() place.Location {
	return place.Location{Label: d.Label, Lat: d.Lat, Lon: d.Lon}
}

// UnitSystem returns the configured default units.
func (c Config) UnitSystem() units.System {
	u, _ := units.Parse(c.Units)
	return u
}

// Load preloads .env, reads path when it exists and the environment
// otherwise, then validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Unable to read .env", slog.String("error", err.Error()))
	}

	var cfg Config
	if _, err := os.Stat(path); path != "" && err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		slog.Debug("Config file not found, using environment", slog.String("path", path))
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read config from environment: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewConfig is Load for entry points that cannot start without a config.
func NewConfig(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
