// Package postgres implements remote.Source over a PostgreSQL table:
//
//	translation_overrides(key, locale, value, updated_at)  PRIMARY KEY (locale, key)
//
// Migrate creates the table and its (locale, updated_at) index from embedded
// goose migrations. Upsert and Delete are provided for seeding and admin
// tooling only.
package postgres
