package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	BaseURL        string
	DatabaseURL    string
	MigrationsPath string
	TemplatesPath  string
	CuratedPath    string

	Redis       Redis
	Cache       Cache
	Admin       Admin
	MQTTBroker  string
	Storage     Storage
	Upstream    Upstream
	Translation Translation
}

type Redis struct {
	Address  string
	Username string
	Password string
}

type Cache struct {
	TTL       time.Duration
	Size      int
	MemoryTTL time.Duration
}

type Admin struct {
	JWTSecret    string
	Username     string
	PasswordHash string
}

// Enabled reports whether admin routes can be mounted.
func (a Admin) Enabled() bool {
	return a.JWTSecret != "" && a.PasswordHash != ""
}

type Storage struct {
	UseSpaces       bool
	ExportDir       string
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

type Upstream struct {
	Timeout        time.Duration
	AlQuranBaseURL string
	QuranComURL    string
	AhadithURL     string
	GadingURL      string
}

type Translation struct {
	GoogleURL     string
	MyMemoryURL   string
	MyMemoryEmail string
	LibreURL      string
	LibreAPIKey   string
	MinScore      float64
	ChunkSize     int
	RatePerSecond float64
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "local")
	v.SetDefault("server_address", ":8080")
	v.SetDefault("base_url", "https://quransindhitarjumo.vercel.app")
	v.SetDefault("migrations_path", "./migrations")
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("curated_hadith_path", "./data/curated_hadith.json")

	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("cache_size", 2048)
	v.SetDefault("memory_ttl", "720h")

	v.SetDefault("admin_username", "admin")

	v.SetDefault("use_spaces", false)
	v.SetDefault("export_dir", "./exports")

	v.SetDefault("upstream_timeout", "15s")
	v.SetDefault("alquran_base_url", "https://api.alquran.cloud/v1")
	v.SetDefault("qurancom_base_url", "https://api.quran.com/api/v4")
	v.SetDefault("ahadith_base_url", "https://ahadith.co.uk/api")
	v.SetDefault("gading_base_url", "https://api.hadith.gading.dev")

	v.SetDefault("google_translate_url", "https://translate.googleapis.com/translate_a/single")
	v.SetDefault("mymemory_url", "https://api.mymemory.translated.net/get")
	v.SetDefault("translation_min_score", 0.35)
	v.SetDefault("translation_chunk_size", 500)
	v.SetDefault("translation_rate", 10.0)
}

// Load reads configuration from environment variables and an optional
// config/config.yaml file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	cfg := &Config{
		Environment:    v.GetString("app_env"),
		ServerAddress:  v.GetString("server_address"),
		BaseURL:        strings.TrimSuffix(v.GetString("base_url"), "/"),
		DatabaseURL:    v.GetString("database_url"),
		MigrationsPath: v.GetString("migrations_path"),
		TemplatesPath:  v.GetString("templates_path"),
		CuratedPath:    v.GetString("curated_hadith_path"),
		Redis: Redis{
			Address:  v.GetString("redis_address"),
			Username: v.GetString("redis_username"),
			Password: v.GetString("redis_password"),
		},
		Cache: Cache{
			TTL:       v.GetDuration("cache_ttl"),
			Size:      v.GetInt("cache_size"),
			MemoryTTL: v.GetDuration("memory_ttl"),
		},
		Admin: Admin{
			JWTSecret:    v.GetString("jwt_secret"),
			Username:     v.GetString("admin_username"),
			PasswordHash: v.GetString("admin_password_hash"),
		},
		MQTTBroker: v.GetString("mqtt_broker_url"),
		Storage: Storage{
			UseSpaces:       v.GetBool("use_spaces"),
			ExportDir:       v.GetString("export_dir"),
			SpacesEndpoint:  v.GetString("spaces_endpoint"),
			SpacesRegion:    v.GetString("spaces_region"),
			SpacesBucket:    v.GetString("spaces_bucket"),
			SpacesCDNURL:    v.GetString("spaces_cdn_url"),
			SpacesAccessKey: v.GetString("spaces_access_key"),
			SpacesSecretKey: v.GetString("spaces_secret_key"),
		},
		Upstream: Upstream{
			Timeout:        v.GetDuration("upstream_timeout"),
			AlQuranBaseURL: v.GetString("alquran_base_url"),
			QuranComURL:    v.GetString("qurancom_base_url"),
			AhadithURL:     v.GetString("ahadith_base_url"),
			GadingURL:      v.GetString("gading_base_url"),
		},
		Translation: Translation{
			GoogleURL:     v.GetString("google_translate_url"),
			MyMemoryURL:   v.GetString("mymemory_url"),
			MyMemoryEmail: v.GetString("mymemory_email"),
			LibreURL:      v.GetString("libretranslate_url"),
			LibreAPIKey:   v.GetString("libretranslate_api_key"),
			MinScore:      v.GetFloat64("translation_min_score"),
			ChunkSize:     v.GetInt("translation_chunk_size"),
			RatePerSecond: v.GetFloat64("translation_rate"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("%w: SERVER_ADDRESS is empty", ErrInvalidConfig)
	}
	if c.Translation.ChunkSize <= 0 {
		return fmt.Errorf("%w: TRANSLATION_CHUNK_SIZE must be positive", ErrInvalidConfig)
	}
	if c.Translation.MinScore < 0 || c.Translation.MinScore > 1 {
		return fmt.Errorf("%w: TRANSLATION_MIN_SCORE must be within [0,1]", ErrInvalidConfig)
	}
	if c.Translation.RatePerSecond <= 0 {
		return fmt.Errorf("%w: TRANSLATION_RATE must be positive", ErrInvalidConfig)
	}
	if c.Storage.UseSpaces && (c.Storage.SpacesBucket == "" || c.Storage.SpacesEndpoint == "") {
		return fmt.Errorf("%w: USE_SPACES requires SPACES_ENDPOINT and SPACES_BUCKET", ErrInvalidConfig)
	}
	return nil
}
