package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug       bool        `yaml:"debug" env:"DEBUG"`
	Server      Server      `yaml:"server"`
	DB          DB          `yaml:"db"`
	Sessions    Sessions    `yaml:"sessions"`
	Catalog     Catalog     `yaml:"catalog"`
	Redis       Redis       `yaml:"redis"`
	Completions Completions `yaml:"completions"`
	Limiter     Limiter     `yaml:"limiter"`
	Tasks       Tasks       `yaml:"tasks"`
	UI          UI          `yaml:"ui"`
}

type UI struct {
	IconsDir string `yaml:"icons_dir" env-default:"./ui/static/icons"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	URI      string        `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database string        `yaml:"database" env-default:"persofy"`
	Timeout  time.Duration `yaml:"timeout" env-default:"10s"`
}

type Sessions struct {
	// Expiry without remember-me, and with it.
	ShortTTL time.Duration `yaml:"short_ttl" env-default:"30m"`
	LongTTL  time.Duration `yaml:"long_ttl" env-default:"240h"`
}

type Catalog struct {
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" env-default:"5m"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
}

type Completions struct {
	BaseURL      string        `yaml:"base_url" env-default:"https://api.openai.com/v1"`
	APIKey       string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model        string        `yaml:"model" env-default:"gpt-4o-mini"`
	Timeout      time.Duration `yaml:"timeout" env-default:"90s"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env-default:"60s"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env-default:"true"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Tasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"2"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"100"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
