// Package catalog loads the reference dataset and seeds it into the stores.
//
// The dataset is YAML. A copy is embedded in the binary and used whenever no
// external file is configured. An external file can be watched, in which
// case every save re-seeds the catalog in place. Re-seeding is idempotent:
// records are matched by slug and keep their IDs.
package catalog
