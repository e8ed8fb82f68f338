package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int      `yaml:"port"`
		MaxImageMB   int      `yaml:"maxImageMB"`
		AllowOrigins []string `yaml:"allowOrigins"`
		// APIKeys maps a subject ID, or "*" for every subject, to its API key.
		// Empty disables auth.
		APIKeys   map[string]string `yaml:"apiKeys"`
		RateLimit struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		Provider string `yaml:"provider"` // openai | anthropic
		OpenAI   struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"openai"`
		Anthropic struct {
			APIKey string `yaml:"apiKey"`
			Model  string `yaml:"model"`
		} `yaml:"anthropic"`
	} `yaml:"ai"`
}

// Load reads config.yaml, then lets environment variables (and a .env file,
// when present) override secrets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// .env is optional
	_ = godotenv.Load()
	return Parse(data)
}

// Parse decodes YAML and applies env overrides and defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.AI.OpenAI.APIKey, "OPENAI_API_KEY")
	override(&c.AI.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	override(&c.Database.Password, "DB_PASSWORD")
	override(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxImageMB <= 0 {
		c.Server.MaxImageMB = 10
	}
	if c.Server.RateLimit.Capacity <= 0 {
		c.Server.RateLimit.Capacity = 30
	}
	if c.Server.RateLimit.RefillRate <= 0 {
		c.Server.RateLimit.RefillRate = 1
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.OpenAI.Model == "" {
		c.AI.OpenAI.Model = "gpt-4o"
	}
	if c.AI.Anthropic.Model == "" {
		c.AI.Anthropic.Model = "claude-sonnet-4-20250514"
	}
}

// Validate rejects unknown drivers and providers.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported ai provider: %s", c.AI.Provider)
	}
	return nil
}

// MaxImageBytes is the upload limit for one photo.
func (c *Config) MaxImageBytes() int64 {
	return int64(c.Server.MaxImageMB) << 20
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
