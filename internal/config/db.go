package config

const (
	// EngineMySQL selects the MySQL gorm driver and session storage.
	EngineMySQL = "mysql"
	// EnginePostgres selects the PostgreSQL gorm driver and session storage.
	EnginePostgres = "postgres"
	// EngineSQLite selects the embedded SQLite driver and in-memory sessions.
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or the file path for sqlite
	GormEngine string `validate:"oneof=mysql postgres sqlite"`
}
