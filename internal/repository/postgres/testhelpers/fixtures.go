package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// GetRegionIDByCode возвращает id региона по его коду из фикстур
func GetRegionIDByCode(db *sql.DB, code string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM regions WHERE code = $1", code).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get region ID by code %s: %w", code, err)
	}
	return id, nil
}

// GetInfrastructureTypeIDByIcon возвращает id типа инфраструктуры по иконке из фикстур
func GetInfrastructureTypeIDByIcon(db *sql.DB, icon string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM infrastructure_types WHERE icon = $1", icon).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get infrastructure type ID by icon %s: %w", icon, err)
	}
	return id, nil
}
