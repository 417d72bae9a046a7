package config

// DB holds the database configuration settings.
type DB struct {
	// Engine selects the gorm driver: sqlite, mysql or postgres.
	Engine string
	// File is the database file path when Engine is sqlite.
	File     string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
