package config

import (
	"fmt"
	"os"
	"sync"
)

const (
	BackendPostgrest = "postgrest"
	BackendPostgres  = "postgres"
	// BackendMemory keeps every table in process memory. Used for local
	// demos and tests.
	BackendMemory = "memory"
)

type DBConfig struct {
	Backend  string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		backend := os.Getenv("DATA_BACKEND")
		if backend == "" {
			backend = BackendPostgrest
		}
		sslMode := os.Getenv("DB_SSLMODE")
		if sslMode == "" {
			sslMode = "require"
		}
		dbConfig = &DBConfig{
			Backend:  backend,
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  sslMode,
		}
	})
	return dbConfig
}

func (c *DBConfig) Validate() error {
	switch c.Backend {
	case BackendPostgrest, BackendMemory:
		return nil
	case BackendPostgres:
		if c.Host == "" || c.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the %s backend", c.Backend)
		}
		return nil
	}
	return fmt.Errorf("unknown DATA_BACKEND %q", c.Backend)
}

func (c *DBConfig) DSN() string {
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, port, c.SSLMode)
}
