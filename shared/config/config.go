package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	StorageDriverPg     = "pg"
	StorageDriverMemory = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort       int           `yaml:"http_port" validate:"required,gt=0"`
	JwtTTL         time.Duration `yaml:"jwt_ttl" validate:"required"`
	StorageDriver  string        `yaml:"storage_driver" validate:"required,oneof=pg memory"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SecureCookies  bool          `yaml:"secure_cookies"`

	MaxTitleLen   int `yaml:"max_title_len" validate:"required,gt=0"`
	MaxTextLen    int `yaml:"max_text_len" validate:"required,gt=0"`
	MaxCommentLen int `yaml:"max_comment_len" validate:"required,gt=0"`

	// per user, applied to every authenticated endpoint
	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"gte=0"`

	Log Log `yaml:"log"`
}

type Log struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// URL returns connection string in the form accepted by both lib/pq and golang-migrate.
func (p Pg) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Dbname,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     Pg     `yaml:"pg"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Public.StorageDriver == StorageDriverPg && (c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "") {
		return fmt.Errorf("pg storage requires pg.host and pg.dbname")
	}
	if c.Public.RateLimitRPS > 0 && c.Public.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive when rate_limit_rps is set")
	}
	return nil
}
