package models

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"sitestock-backend/config"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// DefaultMaterials материалы, которые создаются при первом запуске
var DefaultMaterials = []string{"Cement", "Steel", "Sand"}

// InitDB инициализирует подключение к базе данных
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		// Используем PostgreSQL для продакшена
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	// Используем встроенную SQLite
	if dir := filepath.Dir(cfg.SQLitePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	return OpenSQLite(cfg.SQLitePath)
}

// OpenSQLite открывает SQLite с включенными внешними ключами.
// Соединение одно: записи в SQLite все равно сериализуются.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate создает таблицы sites, materials, inventory и inventory_usage.
// Повторный запуск ничего не меняет.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	dialect, dir := "sqlite3", "migrations/sqlite"
	if db.Dialector.Name() == "postgres" {
		dialect, dir = "postgres", "migrations/postgres"
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// SeedDefaultMaterials заполняет справочник материалов, только если он пуст
func SeedDefaultMaterials(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Material{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Printf("Справочник материалов уже заполнен (%d элементов)", count)
		return nil
	}

	for _, name := range DefaultMaterials {
		material := Material{Name: name}
		if err := db.Create(&material).Error; err != nil {
			return fmt.Errorf("seed material %q: %w", name, err)
		}
	}
	log.Println("Materials seeded")
	return nil
}

// Close закрывает соединение с базой
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
