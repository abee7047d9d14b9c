package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

type Config struct {
	DB struct {
		Driver string
		SQLite struct {
			Path     string
			Filename string
		}
		MySQL struct {
			Name     string
			Host     string
			User     string
			Password string
			Port     uint16
		}
		RepairAttempts int
	}
	Log struct {
		Level  string
		Format string
	}
	// User and Password are the default login for commands run with --no-prompt.
	User     int64
	Password string
}

// Load reads config from environment (BIOGAS_ prefix) and optional biogas.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIOGAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("biogas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("db.mysql.host", "localhost")
	v.SetDefault("db.mysql.port", 3306)
	v.SetDefault("db.repair_attempts", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	cfg := &Config{}
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.SQLite.Path = v.GetString("db.sqlite.path")
	cfg.DB.SQLite.Filename = v.GetString("db.sqlite.filename")
	cfg.DB.MySQL.Name = v.GetString("db.mysql.name")
	cfg.DB.MySQL.Host = v.GetString("db.mysql.host")
	cfg.DB.MySQL.User = v.GetString("db.mysql.user")
	cfg.DB.MySQL.Password = v.GetString("db.mysql.password")
	cfg.DB.RepairAttempts = v.GetInt("db.repair_attempts")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.User = v.GetInt64("user")
	cfg.Password = v.GetString("password")

	port := v.GetInt("db.mysql.port")
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid BIOGAS_DB_MYSQL_PORT %d: must be between 0 and 65535", port)
	}
	cfg.DB.MySQL.Port = uint16(port)

	switch cfg.DB.Driver {
	case DriverSQLite, DriverMySQL:
	case "":
		return nil, fmt.Errorf("BIOGAS_DB_DRIVER is required (sqlite3, mysql)")
	default:
		return nil, fmt.Errorf("unsupported BIOGAS_DB_DRIVER %q (sqlite3, mysql)", cfg.DB.Driver)
	}
	if cfg.DB.RepairAttempts < 1 {
		return nil, fmt.Errorf("BIOGAS_DB_REPAIR_ATTEMPTS must be at least 1")
	}

	return cfg, nil
}
