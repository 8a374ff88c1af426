// Package sqlite persists the catalog in a single SQLite file using the
// pure-Go modernc.org/sqlite driver.
//
// One Store hands out the ingredient, brand, product and offer stores, all
// sharing its connection. Alias keys live in their own table with a unique
// primary key, which is how alias conflicts are detected. List fields such as
// functions and benefits are JSON text, filtered with json_each.
//
// Migrations are numbered NNN_name.up.sql files embedded from migrations/
// and applied in order on open. The default location is
// ~/.skintelect/data/catalog.db, opened in WAL mode with foreign keys on.
package sqlite
