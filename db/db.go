package db

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/huertapp/huerto-server/cmd/models"
)

// NewStorage opens the database. With DB_URL set it connects to Postgres;
// otherwise it falls back to a single SQLite file (DB_PATH, default
// database.db) so the server runs with no external services.
func NewStorage() (*gorm.DB, error) {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	var dialector gorm.Dialector
	if connString := os.Getenv("DB_URL"); connString != "" {
		dialector = postgres.Open(connString)
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)

	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Planta{},
		&models.Publicacion{},
		&models.Logro{},
		&models.Comentario{},
		&models.MeGusta{},
	)
}
