package appconf

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the farezone binary. Values come from
// defaults, then an optional YAML file, then FAREZONE_* environment
// variables, then explicitly set command-line flags.
type Config struct {
	Env       Environment `yaml:"env"`
	LogLevel  string      `yaml:"log-level" validate:"omitempty,oneof=debug info warn warning error"`
	Stations  string      `yaml:"stations"`
	GTFS      GTFSConfig  `yaml:"gtfs"`
	LineNames string      `yaml:"line-names"`
	Language  string      `yaml:"language" validate:"required,bcp47_language_tag"`
	Origin    string      `yaml:"origin"`
	DBPath    string      `yaml:"db-path"`
	ExportDir string      `yaml:"export-dir"`

	Serve          bool     `yaml:"serve"`
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	ApiKeys        []string `yaml:"api-keys"`
	RateLimit      int      `yaml:"rate-limit" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowed-origins"`
}

// GTFSConfig selects a static GTFS feed as the record source.
type GTFSConfig struct {
	Source     string   `yaml:"source"`
	UnitsPerKm float64  `yaml:"units-per-km" validate:"gte=0"`
	Routes     []string `yaml:"routes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Env:       Development,
		LogLevel:  "info",
		Stations:  "data/station_dists.csv",
		LineNames: "data/line_names.yaml",
		Language:  "en",
		Port:      4000,
		ApiKeys:   []string{"test"},
		RateLimit: 100,
		GTFS:      GTFSConfig{UnitsPerKm: 1000},
	}
}

// LoadFile merges a YAML config file into cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with FAREZONE_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("FAREZONE_LOG_LEVEL", &cfg.LogLevel)
	str("FAREZONE_STATIONS", &cfg.Stations)
	str("FAREZONE_GTFS", &cfg.GTFS.Source)
	str("FAREZONE_LINE_NAMES", &cfg.LineNames)
	str("FAREZONE_LANGUAGE", &cfg.Language)
	str("FAREZONE_ORIGIN", &cfg.Origin)
	str("FAREZONE_DB", &cfg.DBPath)
	str("FAREZONE_EXPORT_DIR", &cfg.ExportDir)

	if v, ok := lookup("FAREZONE_ENV"); ok && v != "" {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := lookup("FAREZONE_API_KEYS"); ok && v != "" {
		cfg.ApiKeys = splitList(v)
	}
	if v, ok := lookup("FAREZONE_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FAREZONE_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v, ok := lookup("FAREZONE_RATE_LIMIT"); ok && v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FAREZONE_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}
	return nil
}

// Validate checks field constraints and the combinations between fields.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Stations == "" && c.GTFS.Source == "" {
		return errors.New("either a station record file or a GTFS source is required")
	}
	if !c.Serve && c.Origin == "" {
		return errors.New("an origin station is required unless serving")
	}
	return nil
}

// Parse builds the configuration from args (without the program name). A
// .env file in the working directory is loaded first when envFile is set.
func Parse(args []string, envFile string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("farezone", flag.ContinueOnError)
	var (
		configPath string
		env        string
		apiKeys    string
		origins    string
		routes     string
		flagCfg    = cfg
	)
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&flagCfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&flagCfg.Stations, "stations", cfg.Stations, "Station record CSV file")
	fs.StringVar(&flagCfg.GTFS.Source, "gtfs", "", "Static GTFS zip path or URL used instead of the CSV file")
	fs.Float64Var(&flagCfg.GTFS.UnitsPerKm, "gtfs-units-per-km", cfg.GTFS.UnitsPerKm, "shape_dist_traveled units per kilometre")
	fs.StringVar(&routes, "gtfs-routes", "", "Comma separated GTFS route ids to import")
	fs.StringVar(&flagCfg.LineNames, "line-names", cfg.LineNames, "Line name file (YAML or JSON)")
	fs.StringVar(&flagCfg.Language, "lang", cfg.Language, "Language tag for line names")
	fs.StringVar(&flagCfg.Origin, "origin", "", "Origin station display name")
	fs.StringVar(&flagCfg.DBPath, "db", "", "SQLite database file for results")
	fs.StringVar(&flagCfg.ExportDir, "export-dir", "", "Directory for JSON exports")
	fs.BoolVar(&flagCfg.Serve, "serve", false, "Serve the HTTP API instead of printing a report")
	fs.IntVar(&flagCfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&apiKeys, "api-keys", "", "Comma separated API keys")
	fs.IntVar(&flagCfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per API key")
	fs.StringVar(&origins, "allowed-origins", "", "Comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		if err := LoadFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "env":
			cfg.Env = EnvFlagToEnvironment(env)
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		case "stations":
			cfg.Stations = flagCfg.Stations
		case "gtfs":
			cfg.GTFS.Source = flagCfg.GTFS.Source
		case "gtfs-units-per-km":
			cfg.GTFS.UnitsPerKm = flagCfg.GTFS.UnitsPerKm
		case "gtfs-routes":
			cfg.GTFS.Routes = splitList(routes)
		case "line-names":
			cfg.LineNames = flagCfg.LineNames
		case "lang":
			cfg.Language = flagCfg.Language
		case "origin":
			cfg.Origin = flagCfg.Origin
		case "db":
			cfg.DBPath = flagCfg.DBPath
		case "export-dir":
			cfg.ExportDir = flagCfg.ExportDir
		case "serve":
			cfg.Serve = flagCfg.Serve
		case "port":
			cfg.Port = flagCfg.Port
		case "api-keys":
			cfg.ApiKeys = splitList(apiKeys)
		case "rate-limit":
			cfg.RateLimit = flagCfg.RateLimit
		case "allowed-origins":
			cfg.AllowedOrigins = splitList(origins)
		}
	})

	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
