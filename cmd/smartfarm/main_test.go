package main

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("SMARTFARM_CONFIG")
	defer os.Setenv("SMARTFARM_CONFIG", originalEnv)

	os.Setenv("SMARTFARM_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestGetConfigPath verifies the env override and default.
func TestGetConfigPath(t *testing.T) {
	originalEnv := os.Getenv("SMARTFARM_CONFIG")
	defer os.Setenv("SMARTFARM_CONFIG", originalEnv)

	os.Setenv("SMARTFARM_CONFIG", "/tmp/custom.yaml")
	if got := getConfigPath(); got != "/tmp/custom.yaml" {
		t.Errorf("getConfigPath() = %q, want /tmp/custom.yaml", got)
	}

	os.Unsetenv("SMARTFARM_CONFIG")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}
}
