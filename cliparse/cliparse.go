package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BaseURL      string
	Email        EmailConfig
}

// EmailConfig holds the SMTP notification settings. Enabled is true when
// any EMAIL_ variable is set, in which case all of them are required.
type EmailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
	From     string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("diddle", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "b", "", "Public base URL used in share and manage links")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3324 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("base URL required (use -b or BASE_URL env)")
	}

	email, err := parseEmailEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Email = email

	return cfg, nil
}

// emailEnvVars are the variables that together enable the SMTP client.
// Setting some but not all of them is a configuration error rather than
// a silent partial setup.
var emailEnvVars = []string{
	"EMAIL_HOST",
	"EMAIL_PORT",
	"EMAIL_HOST_USER",
	"EMAIL_HOST_PASSWORD",
	"EMAIL_USE_TLS",
	"EMAIL_MESSAGE_FROM",
}

func parseEmailEnv() (EmailConfig, error) {
	anySet := false
	for _, v := range emailEnvVars {
		if _, ok := os.LookupEnv(v); ok {
			anySet = true
			break
		}
	}
	if !anySet {
		return EmailConfig{}, nil
	}

	for _, v := range emailEnvVars {
		if _, ok := os.LookupEnv(v); !ok {
			return EmailConfig{}, fmt.Errorf("some EMAIL_ variables are set but %s is not set", v)
		}
	}

	port, err := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	if err != nil {
		return EmailConfig{}, errors.New("invalid EMAIL_PORT env variable")
	}

	useTLS := false
	switch os.Getenv("EMAIL_USE_TLS") {
	case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
		useTLS = true
	}

	return EmailConfig{
		Enabled:  true,
		Host:     os.Getenv("EMAIL_HOST"),
		Port:     port,
		User:     os.Getenv("EMAIL_HOST_USER"),
		Password: os.Getenv("EMAIL_HOST_PASSWORD"),
		UseTLS:   useTLS,
		From:     os.Getenv("EMAIL_MESSAGE_FROM"),
	}, nil
}
