package betterwpdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromConfig_ExplicitDSNWins(t *testing.T) {
	dsn, err := dsnFromConfig(Config{DSN: "user:pw@tcp(h:3306)/db", Host: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(h:3306)/db", dsn)
}

func TestDSNFromConfig_BuildsFromFields(t *testing.T) {
	dsn, err := dsnFromConfig(Config{
		Host:     "localhost",
		Port:     3306,
		Username: "wp",
		Password: "secret",
		Database: "wordpress",
	})
	require.NoError(t, err)
	assert.Equal(t, "wp:secret@tcp(localhost:3306)/wordpress", dsn)
}

func TestDSNFromConfig_ParamsSortedAndEscaped(t *testing.T) {
	dsn, err := dsnFromConfig(Config{
		Host:     "db",
		Database: "app",
		Params: map[string]string{
			"parseTime": "true",
			"charset":   "utf8mb4",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "tcp(db)/app?charset=utf8mb4&parseTime=true", dsn)
}

func TestDSNFromConfig_NoHostNoDSN(t *testing.T) {
	_, err := dsnFromConfig(Config{})
	require.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BETTER_WPDB_HOST", "envhost")
	t.Setenv("BETTER_WPDB_PORT", "3307")
	t.Setenv("BETTER_WPDB_USERNAME", "envuser")
	t.Setenv("BETTER_WPDB_DATABASE", "envdb")

	cfg := ConfigFromEnv()
	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "envdb", cfg.Database)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.yaml")
	data := []byte(`
host: filehost
port: 3308
username: fileuser
password: filepw
database: filedb
params:
  parseTime: "true"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "filehost", cfg.Host)
	assert.Equal(t, 3308, cfg.Port)
	assert.Equal(t, "filedb", cfg.Database)
	assert.Equal(t, "true", cfg.Params["parseTime"])
}

func TestLoadConfigFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o600))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}
