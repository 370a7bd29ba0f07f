package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Location string `yaml:"location"`
}

type WebConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	Debug    bool   `yaml:"debug"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type InventoryConfig struct {
	LowStockThreshold int    `yaml:"low_stock_threshold"`
	LowStockInterval  string `yaml:"low_stock_interval"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system"`
	Web       WebConfig       `yaml:"web"`
	Database  DBConfig        `yaml:"database"`
	Logger    LogConfig       `yaml:"logger"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Passwd, c.Name)
}

// DefaultConfig is used when no config file is present.
var DefaultConfig = &AppConfig{
	System: SysConfig{Location: "Asia/Shanghai"},
	Web:    WebConfig{Host: "0.0.0.0", Port: 3000, Debug: true},
	Database: DBConfig{
		Type: "postgres", Host: "127.0.0.1", Port: 5432,
		Name: "warehub", User: "postgres", Passwd: "postgres",
		MaxConn: 100, IdleConn: 10,
	},
	Logger:    LogConfig{Mode: "development", FileEnable: false, Filename: "warehub.log"},
	Inventory: InventoryConfig{LowStockThreshold: 10, LowStockInterval: "@every 1h"},
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(v)
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// WAREHUB_* environment overrides on top.
func LoadConfig(cfile string) (*AppConfig, error) {
	defaults := *DefaultConfig
	cfg := &defaults
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				return nil, errors.Wrap(err, "read config file")
			}
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "parse config file")
			}
		}
	}

	setEnvValue("WAREHUB_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("WAREHUB_WEB_PORT", &cfg.Web.Port)
	setEnvBoolValue("WAREHUB_WEB_DEBUG", &cfg.Web.Debug)
	setEnvValue("WAREHUB_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("WAREHUB_DB_PORT", &cfg.Database.Port)
	setEnvValue("WAREHUB_DB_NAME", &cfg.Database.Name)
	setEnvValue("WAREHUB_DB_USER", &cfg.Database.User)
	setEnvValue("WAREHUB_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("WAREHUB_DB_DEBUG", &cfg.Database.Debug)
	setEnvValue("WAREHUB_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvIntValue("WAREHUB_LOW_STOCK_THRESHOLD", &cfg.Inventory.LowStockThreshold)

	return cfg, nil
}
