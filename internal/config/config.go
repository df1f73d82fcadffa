package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// Path to the SQLite file. The backup endpoint copies this file,
		// so the whole store has to live in it.
		Path       string `yaml:"path"`
		BackupsDir string `yaml:"backups_dir"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		// Token validity in hours. 168 = 7 days.
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Reservations struct {
		DepositAmount int `yaml:"deposit_amount"`
	} `yaml:"reservations"`

	Reset struct {
		TTLMinutes         int `yaml:"ttl_minutes"`
		CleanupIntervalMin int `yaml:"cleanup_interval_min"`
	} `yaml:"reset"`

	FrontendURL string `yaml:"frontend_url"`

	FirstAdminName     string `yaml:"first_admin_name"`
	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig loads config.yaml, or builds the config from environment
// variables when DATABASE_PATH is set (the mode the test suite uses).
func LoadConfig() {
	var cfg Config

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	dbPath := os.Getenv("DATABASE_PATH")

	if dbPath == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.Path = dbPath
	cfg.Database.BackupsDir = os.Getenv("BACKUPS_DIR")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.FirstAdminName = os.Getenv("FIRST_ADMIN_NAME")
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4001
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev_secret"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 7 * 24
	}
	if cfg.Database.BackupsDir == "" {
		cfg.Database.BackupsDir = "./backups"
	}
	if cfg.Reservations.DepositAmount == 0 {
		cfg.Reservations.DepositAmount = 10000
	}
	if cfg.Reset.TTLMinutes == 0 {
		cfg.Reset.TTLMinutes = 15
	}
	if cfg.Reset.CleanupIntervalMin == 0 {
		cfg.Reset.CleanupIntervalMin = 30
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
