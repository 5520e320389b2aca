package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	raw := `
http:
  address: ":8080"
database:
  host: "db"
  port: 5432
  user: "u"
  password: "p"
  name: "villadesk"
  ssl_mode: "disable"
backend:
  base_url: "http://backend:9000"
  timeout_seconds: 10
hotel:
  rooms:
    - id: 1
      number: "101"
      type: "Single"
      price_per_night: 80
      status: "Available"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=villadesk sslmode=disable", cfg.Database.DSN())
	require.Len(t, cfg.Hotel.Rooms, 1)
	assert.Equal(t, "101", cfg.Hotel.Rooms[0].Number)
	assert.Equal(t, 80.0, cfg.Hotel.Rooms[0].PricePerNight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [broken"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
