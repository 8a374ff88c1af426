package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
	"github.com/skintelect/skintelect/internal/core/domain"
)

func TestOpenStores_Memory(t *testing.T) {
	stores, err := openStores(domain.StorageSettings{Driver: domain.StorageDriverMemory})
	require.NoError(t, err)
	defer stores.closer.Close()

	assert.NoError(t, stores.pinger.Ping(context.Background()))
}

func TestOpenStores_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	stores, err := openStores(domain.StorageSettings{Driver: domain.StorageDriverSQLite, Path: path})
	require.NoError(t, err)
	defer stores.closer.Close()

	assert.FileExists(t, path)
	assert.NoError(t, stores.pinger.Ping(context.Background()))
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	stores, err := openStores(domain.StorageSettings{Driver: domain.StorageDriverMemory})
	require.NoError(t, err)
	seeder := catalog.NewSeeder(stores.brands, stores.ingredients, stores.products, stores.offers)

	require.NoError(t, seedIfEmpty(ctx, seeder, stores.ingredients, ""))
	empty, err := catalog.IsEmpty(ctx, stores.ingredients)
	require.NoError(t, err)
	assert.False(t, empty)

	// A populated catalog is left alone, so a bad path is never read.
	assert.NoError(t, seedIfEmpty(ctx, seeder, stores.ingredients, "/does/not/exist.yaml"))
}

func TestSeedIfEmpty_MissingFile(t *testing.T) {
	stores, err := openStores(domain.StorageSettings{Driver: domain.StorageDriverMemory})
	require.NoError(t, err)
	seeder := catalog.NewSeeder(stores.brands, stores.ingredients, stores.products, stores.offers)

	err = seedIfEmpty(context.Background(), seeder, stores.ingredients, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "loading dataset")
}

func TestWire(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKINTELECT_STORAGE_DRIVER", "sqlite")
	t.Setenv("SKINTELECT_STORAGE_PATH", "")

	closer, err := wire(context.Background(), dir)
	require.NoError(t, err)
	defer closer.Close()

	assert.FileExists(t, filepath.Join(dir, "data", "catalog.db"))
}

func TestWire_MemoryDriver(t *testing.T) {
	t.Setenv("SKINTELECT_STORAGE_DRIVER", "memory")

	closer, err := wire(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestConfigDir(t *testing.T) {
	env := func(v string) func(string) string {
		return func(key string) string {
			if key == "SKINTELECT_HOME" {
				return v
			}
			return ""
		}
	}

	tests := []struct {
		name string
		args []string
		home string
		want string
	}{
		{name: "flag wins", args: []string{"--config", "/etc/sk"}, home: "/home/sk", want: "/etc/sk"},
		{name: "env fallback", args: []string{"serve"}, home: "/home/sk", want: "/home/sk"},
		{name: "neither", args: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configDir(tt.args, env(tt.home)))
		})
	}
}
