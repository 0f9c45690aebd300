package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fmg-mcp/internal/logger"
)

// Config holds all application configuration
type Config struct {
	// FortiManager connection
	Host      string
	Port      int
	Username  string
	Password  string
	APIToken  string
	VerifySSL bool
	Timeout   time.Duration

	// Default ADOM for tools that don't receive one
	DefaultADOM string

	// Task polling defaults
	TaskTimeout      time.Duration
	TaskPollInterval time.Duration
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Port:             443,
		VerifySSL:        false,
		Timeout:          30 * time.Second,
		DefaultADOM:      "root",
		TaskTimeout:      300 * time.Second,
		TaskPollInterval: 5 * time.Second,
	}
}

// LoadEnvironment loads .env files from the working directory and the
// directory of the executable, then returns a config populated from the
// environment.
func LoadEnvironment() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found in current directory: %v", err)
	}

	if execPath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(execPath), ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Debug("No .env file found next to executable: %v", err)
		}
	}

	cfg := NewConfig()
	cfg.LoadFromEnvironment()
	return cfg
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if host := os.Getenv("FORTIMANAGER_HOST"); host != "" {
		c.Host = host
	}

	if port := os.Getenv("FORTIMANAGER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}

	if user := os.Getenv("FORTIMANAGER_USERNAME"); user != "" {
		c.Username = user
	}

	if pass := os.Getenv("FORTIMANAGER_PASSWORD"); pass != "" {
		c.Password = pass
	}

	if token := os.Getenv("FORTIMANAGER_API_TOKEN"); token != "" {
		c.APIToken = token
	}

	if verify := os.Getenv("FORTIMANAGER_VERIFY_SSL"); verify != "" {
		if v, err := strconv.ParseBool(verify); err == nil {
			c.VerifySSL = v
		}
	}

	if timeout := os.Getenv("FORTIMANAGER_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.Timeout = time.Duration(t) * time.Second
		}
	}

	if adom := os.Getenv("FMG_DEFAULT_ADOM"); adom != "" {
		c.DefaultADOM = adom
	}

	if timeout := os.Getenv("FMG_TASK_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.TaskTimeout = time.Duration(t) * time.Second
		}
	}

	if interval := os.Getenv("FMG_TASK_POLL_INTERVAL"); interval != "" {
		if i, err := strconv.Atoi(interval); err == nil {
			c.TaskPollInterval = time.Duration(i) * time.Second
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("FortiManager host cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", c.Port)
	}

	if c.APIToken == "" && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("no authentication provided: set FORTIMANAGER_API_TOKEN or FORTIMANAGER_USERNAME/FORTIMANAGER_PASSWORD")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %v", c.Timeout)
	}

	if c.TaskTimeout <= 0 {
		return fmt.Errorf("task timeout must be positive, got: %v", c.TaskTimeout)
	}

	if c.TaskPollInterval <= 0 {
		return fmt.Errorf("task poll interval must be positive, got: %v", c.TaskPollInterval)
	}

	return nil
}
