package config

import (
	"time"

	"github.com/voltclabs/voltfeed/internal/logger"
)

// Config represents the application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Video       VideoConfig    `mapstructure:"video"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Wallet      WalletConfig   `mapstructure:"wallet"`
	Logging     logger.Config  `mapstructure:"logging"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Dbname   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	Sslmode  string `mapstructure:"sslmode"`
	Timezone string `mapstructure:"timezone"`
	Pool     struct {
		MaxOpen int `mapstructure:"maxOpen"`
		MaxIdle int `mapstructure:"maxIdle"`
	} `mapstructure:"pool"`
}

// RedisConfig represents Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig represents storage configuration settings
type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

// S3Config contains settings for the S3-compatible blob store (R2 in
// production, MinIO in development).
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSSL"`
	PublicURL       string `mapstructure:"publicUrl"`
}

// VideoConfig contains video upload validation settings
type VideoConfig struct {
	MaxSize        int64    `mapstructure:"maxSize"`
	MinTitleLength int      `mapstructure:"minTitleLength"`
	MaxTitleLength int      `mapstructure:"maxTitleLength"`
	AllowedFormats []string `mapstructure:"allowedFormats"`
}

// AuthConfig represents admin authentication settings
type AuthConfig struct {
	AdminPassword string        `mapstructure:"adminPassword"`
	SessionTTL    time.Duration `mapstructure:"sessionTTL"`
	SessionStore  string        `mapstructure:"sessionStore"`
}

// WalletConfig represents the token gate settings
type WalletConfig struct {
	RPCURL          string  `mapstructure:"rpcUrl"`
	TokenAddress    string  `mapstructure:"tokenAddress"`
	RequiredBalance float64 `mapstructure:"requiredBalance"`
	ChainID         int64   `mapstructure:"chainId"`
}
