package db

import (
	"database/sql"
	"fmt"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE pages (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE elements (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		page_id        TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
		selector_type  TEXT NOT NULL,
		selector_value TEXT NOT NULL,
		action_type    TEXT NOT NULL DEFAULT 'click',
		action_value   TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,
	`CREATE TABLE features (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		parent_feature_id TEXT REFERENCES features(id) ON DELETE CASCADE,
		created_at        TEXT NOT NULL
	)`,
	`CREATE TABLE scenarios (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		feature_id TEXT NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE scenario_elements (
		id           TEXT PRIMARY KEY,
		scenario_id  TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
		element_name TEXT NOT NULL,
		action_type  TEXT NOT NULL DEFAULT 'Click',
		action_value TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX pages_project_id ON pages(project_id)`,
	`CREATE INDEX elements_page_id ON elements(page_id)`,
	`CREATE INDEX features_parent_feature_id ON features(parent_feature_id)`,
	`CREATE INDEX scenarios_feature_id ON scenarios(feature_id)`,
	`CREATE INDEX scenario_elements_scenario_id ON scenario_elements(scenario_id)`,
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
