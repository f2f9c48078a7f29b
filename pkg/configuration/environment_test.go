package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env"), "SIGELED_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	_ = os.Unsetenv("SIGELED_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("SIGELED_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCacheOptions_Validate(t *testing.T) {
	opts := CacheOptions{Storage: "memory"}
	require.NoError(t, opts.Validate())

	opts = CacheOptions{Storage: "redis"}
	require.Error(t, opts.Validate(), "redis storage without URL must fail")

	opts = CacheOptions{Storage: "redis", RedisURL: "localhost:6379"}
	require.NoError(t, opts.Validate())

	opts = CacheOptions{Storage: "disk"}
	require.Error(t, opts.Validate())
}

func TestRateLimitOptions_Validate(t *testing.T) {
	opts := RateLimitOptions{Storage: "memory", GlobalRPS: 100}
	require.NoError(t, opts.Validate())

	opts = RateLimitOptions{Storage: "memory", GlobalRPS: -1}
	require.Error(t, opts.Validate())

	opts = RateLimitOptions{Storage: "redis"}
	require.Error(t, opts.Validate())
}

func TestValidateBackend(t *testing.T) {
	c := &Configuration{}
	c.Backend = BackendOptions{BaseURL: "http://localhost:8080/api/", Timeout: 1}
	require.NoError(t, c.validateBackend())
	require.Equal(t, "http://localhost:8080/api", c.Backend.BaseURL)

	c.Backend = BackendOptions{BaseURL: "localhost:8080", Timeout: 1}
	require.Error(t, c.validateBackend())

	c.Backend = BackendOptions{BaseURL: "", Timeout: 1}
	require.Error(t, c.validateBackend())

	c.Backend = BackendOptions{BaseURL: "http://x", Timeout: 0}
	require.Error(t, c.validateBackend())
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
