// Package file stores settings in <config dir>/config.toml. Dotted keys map
// to nested TOML tables, and SKINTELECT_* environment variables override
// whatever the file says.
package file
