package platform

import (
	"fmt"
	"os"
	"strings"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config 包含服务启动所需的全部配置
type Config struct {
	Port        string
	GinMode     string
	LogPath     string
	CORSOrigins []string
	DB          DBConfig
}

// DBConfig 包含数据库连接的配置信息
type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// LoadConfig reads the process environment. Call godotenv.Load first so that
// values from .env are visible here.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:        getEnv("PORT", "3000"),
		GinMode:     os.Getenv("GIN_MODE"),
		LogPath:     getEnv("LOG_PATH", "./log"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DB: DBConfig{
			Driver:     getEnv("DB_DRIVER", DriverMySQL),
			Host:       os.Getenv("SQL_HOST"),
			Port:       getEnv("SQL_PORT", "3306"),
			User:       os.Getenv("SQL_USER"),
			Password:   os.Getenv("SQL_PASSWORD"),
			DBName:     os.Getenv("SQL_DBNAME"),
			SQLitePath: getEnv("SQLITE_PATH", "braincontrol.db"),
		},
	}

	if err := validateOrigins(config.CORSOrigins); err != nil {
		return nil, err
	}
	if err := config.DB.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// validateOrigins rejects CORS_ORIGINS values that cors.New would panic on.
func validateOrigins(origins []string) error {
	if len(origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS lists no origins")
	}
	for _, origin := range origins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be \"*\" or start with http:// or https://", origin)
		}
	}
	return nil
}

func (c DBConfig) validate() error {
	switch c.Driver {
	case DriverMySQL:
		var missing []string
		if c.Host == "" {
			missing = append(missing, "SQL_HOST")
		}
		if c.User == "" {
			missing = append(missing, "SQL_USER")
		}
		if c.DBName == "" {
			missing = append(missing, "SQL_DBNAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing database settings: %s", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("missing database settings: SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
