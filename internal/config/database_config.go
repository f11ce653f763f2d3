package config

type DatabaseConfig interface {
	GetDatabaseDSN() string
}

type Database struct{}

var _ DatabaseConfig = Database{}

func (Database) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "postgres://localhost:5432/mdbots?sslmode=disable")
}
