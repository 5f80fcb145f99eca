// internal/config/database.go
package config

import (
	"fmt"
	"time"
)

// DSN renders the libpq keyword/value connection string used by the postgres storage backend.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (d *DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.MaxLifetime) * time.Second
}

// Silent reports whether SQL statement logging is off.
func (d *DatabaseConfig) Silent() bool {
	return d.LogLevel == "" || d.LogLevel == "silent"
}
