package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://10.0.2.2:4000"
	DefaultTimeout = 20 * time.Second

	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"

	MissingExpExpired = "expired"
	MissingExpValid   = "valid"

	PetModeRemote    = "remote"
	PetModeDualWrite = "dual-write"
)

// Client es la configuración del CLI / núcleo cliente.
type Client struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	Store       string        `yaml:"store"`
	StorePath   string        `yaml:"store_path"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisPrefix string        `yaml:"redis_prefix"`
	MissingExp  string        `yaml:"missing_exp"`
	PetMode     string        `yaml:"pet_mode"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
}

// Server es la configuración del backend sandbox (cmd/api).
type Server struct {
	Addr      string
	DBDSN     string
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	APIPrefix string
}

// LoadDotEnv carga .env si existe. Un archivo ausente no es error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// LoadClient arma la config del cliente: defaults < archivo YAML < env.
// path vacío => $MYVET_CONFIG o ~/.myvet/config.yaml (opcional).
func LoadClient(path string) (Client, error) {
	cfg := Client{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		Store:       StoreFile,
		StorePath:   defaultStorePath(),
		RedisAddr:   "127.0.0.1:6379",
		RedisPrefix: "myvet:",
		MissingExp:  MissingExpExpired,
		PetMode:     PetModeRemote,
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = getenv("MYVET_CONFIG", defaultConfigPath())
		explicit = os.Getenv("MYVET_CONFIG") != ""
	}
	if err := mergeFile(&cfg, path, explicit); err != nil {
		return Client{}, err
	}

	cfg.BaseURL = getenv("MYVET_BASE_URL", cfg.BaseURL)
	cfg.Timeout = getenvDuration("MYVET_TIMEOUT", cfg.Timeout)
	cfg.Store = getenv("MYVET_STORE", cfg.Store)
	cfg.StorePath = getenv("MYVET_STORE_PATH", cfg.StorePath)
	cfg.RedisAddr = getenv("MYVET_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPrefix = getenv("MYVET_REDIS_PREFIX", cfg.RedisPrefix)
	cfg.MissingExp = getenv("MYVET_MISSING_EXP", cfg.MissingExp)
	cfg.PetMode = getenv("MYVET_PET_MODE", cfg.PetMode)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("LOG_FORMAT", cfg.LogFormat)

	return cfg, cfg.Validate()
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("config: base_url required")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	switch c.MissingExp {
	case MissingExpExpired, MissingExpValid:
	default:
		return fmt.Errorf("config: missing_exp must be %q or %q", MissingExpExpired, MissingExpValid)
	}
	switch c.PetMode {
	case PetModeRemote, PetModeDualWrite:
	default:
		return fmt.Errorf("config: pet_mode must be %q or %q", PetModeRemote, PetModeDualWrite)
	}
	return nil
}

func LoadServer() Server {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	prefix, ok := os.LookupEnv("API_PREFIX")
	if !ok {
		prefix = "/api"
	}
	return Server{
		Addr:      addr,
		DBDSN:     os.Getenv("DB_DSN"),
		JWTSecret: getenv("JWT_SECRET", "dev-secret"),
		JWTIssuer: getenv("JWT_ISSUER", "myvet-sandbox"),
		JWTTTL:    getenvDuration("JWT_TTL", 24*time.Hour),
		APIPrefix: strings.TrimRight(strings.TrimSpace(prefix), "/"),
	}
}

func mergeFile(cfg *Client, path string, required bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func defaultConfigPath() string {
	return filepath.Join(homeDir(), ".myvet", "config.yaml")
}

func defaultStorePath() string {
	return filepath.Join(homeDir(), ".myvet", "store.json")
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
