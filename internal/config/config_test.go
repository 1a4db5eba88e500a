// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets POSTCTL_CFG to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("POSTCTL_CFG", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "json", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				api, ok := cfg.Data["api"].(map[string]interface{})
				assert.True(t, ok, "api should be a map")
				assert.Equal(t, "https://api.example.test", api["base"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "postctl", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["color"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				cmds, ok := cfg.Data["commands"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, cmds, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
		{
			name:     "malformed file",
			testFile: "malformed.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("POSTCTL_CFG", "/nonexistent/path/postctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_POSTCTL_CFG_IsDirectory(t *testing.T) {
	t.Setenv("POSTCTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_StandardLocations(t *testing.T) {
	dir := t.TempDir()
	abs, err := filepath.Abs(filepath.Join("testdata", "simple.yaml"))
	assert.NoError(t, err)
	assert.NoError(t, copyFile(abs, filepath.Join(dir, FileName)))

	t.Setenv("POSTCTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	Config = Type{}
	defer func() { Config = Type{} }()

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "output",
			want:     "json",
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "api.base",
			want:     "https://api.example.test",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "version",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{
			name:     "int value",
			testFile: "mixed-types.yaml",
			key:      "padding",
			want:     2,
		},
		{
			name:     "float value converted to int",
			testFile: "mixed-types.yaml",
			key:      "timeout",
			want:     30,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-int value",
			testFile: "simple.yaml",
			key:      "output",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name     string
		testFile string
		key      string
		want     time.Duration
		wantErr  bool
	}{
		{
			name:     "duration string",
			testFile: "nested.yaml",
			key:      "api.timeout",
			want:     15 * time.Second,
		},
		{
			name:     "bare seconds",
			testFile: "mixed-types.yaml",
			key:      "timeout",
			want:     30500 * time.Millisecond,
		},
		{
			name:     "not a duration",
			testFile: "simple.yaml",
			key:      "output",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetDuration(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	cleanup := setupTestConfig(t, "mixed-types.yaml")
	defer cleanup()

	_, _ = Load()

	got, err := GetStringSlice("commands")
	assert.NoError(t, err)
	assert.Equal(t, []string{"refresh", "status"}, got)

	got, err = GetStringSlice("name")
	assert.NoError(t, err)
	assert.Equal(t, []string{"postctl"}, got)

	_, err = GetStringSlice("padding")
	assert.Error(t, err)

	got, err = GetStringSlice("missing", nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfig_GetWithNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "namespace.yaml")
	defer cleanup()

	_, err := Load("list-posts")
	assert.NoError(t, err)

	val, err := Config.get("output")
	assert.NoError(t, err)
	assert.Equal(t, "yaml", val)

	val, err = Config.get("titles")
	assert.NoError(t, err)
	assert.Equal(t, true, val)

	// Falls back to the bare key when the namespace lacks it.
	Config.Namespace = "refresh"
	val, err = Config.get("output")
	assert.NoError(t, err)
	assert.Equal(t, "text", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "simple.yaml")
	defer cleanup()

	// GetString loads on demand.
	val, err := GetString("cache.file")
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/postctl/cache.json", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o600)
}
