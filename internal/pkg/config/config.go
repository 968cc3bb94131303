package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig configures the TCP protocol listener.
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// AdminConfig configures the optional HTTP ops endpoint.
type AdminConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Mode    string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig configures the storage engine.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"required,oneof=sqlite mysql"`
	Path            string `mapstructure:"path"` // sqlite file path
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
	LogLevel        string `mapstructure:"log_level"`         // silent/error/warn/info
}

// LogConfig configures logging output.
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// SchedulerConfig configures the housekeeping job.
type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"` // seconds-resolution cron expression
}

// Load reads and validates the configuration file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	GlobalConfig = config

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "taskhub")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 9000)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "db/taskhub.db")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("scheduler.cron", "0 */5 * * * *")
}

// GetDSN builds the MySQL DSN. Only meaningful when driver is mysql.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}
