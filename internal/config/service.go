package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Logger interface for logging operations during config loading
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
}

// Service implements configuration loading
type Service struct {
	logger Logger
}

// NewService creates a new configuration service
func NewService(logger Logger) *Service {
	return &Service{logger: logger}
}

// Load loads the configuration from the specified path. Secrets come from a
// .env file (or the process environment) and override the yaml values.
func (s *Service) Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	if os.Getenv("ENV") == "test" {
		v.SetConfigName("config_test")
	} else {
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	s.setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	s.mergeEnv(v, path)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", nil)
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *Service) setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.pool.maxOpen", 100)
	v.SetDefault("database.pool.maxIdle", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("video.maxSize", 100*1024*1024) // 100MB
	v.SetDefault("video.minTitleLength", 1)
	v.SetDefault("video.maxTitleLength", 100)
	v.SetDefault("video.allowedFormats", []string{".mp4", ".mov"})
	v.SetDefault("auth.sessionTTL", "24h")
	v.SetDefault("auth.sessionStore", "memory")
	v.SetDefault("wallet.requiredBalance", 10000)
	v.SetDefault("wallet.chainId", 8453)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// mergeEnv reads secrets from a .env file in the config path and overlays
// them onto the yaml configuration. A missing .env file is not an error so
// the process environment alone can carry the secrets.
func (s *Service) mergeEnv(v *viper.Viper, path string) {
	env := viper.New()
	env.SetConfigFile(path + "/.env")
	env.SetConfigType("env")
	env.AutomaticEnv()
	_ = env.ReadInConfig()

	overrides := map[string]string{
		"auth.adminPassword":         "ADMIN_PASSWORD",
		"database.password":          "DATABASE_PASSWORD",
		"storage.s3.accessKeyId":     "S3_ACCESS_KEY_ID",
		"storage.s3.secretAccessKey": "S3_SECRET_ACCESS_KEY",
		"storage.s3.endpoint":        "S3_ENDPOINT",
		"storage.s3.bucket":          "S3_BUCKET_NAME",
		"storage.s3.publicUrl":       "S3_PUBLIC_URL",
		"wallet.rpcUrl":              "WALLET_RPC_URL",
		"wallet.tokenAddress":        "WALLET_TOKEN_ADDRESS",
	}
	for key, envKey := range overrides {
		if val := env.GetString(envKey); val != "" {
			v.Set(key, val)
		}
	}
}

// validate performs validation on the configuration
func (s *Service) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}
	if config.Auth.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}
	if config.Video.MaxSize <= 0 {
		return fmt.Errorf("video max size must be positive")
	}
	return nil
}
