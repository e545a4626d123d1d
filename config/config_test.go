package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnvHelpersFallBackOnInvalidValues(t *testing.T) {
	t.Setenv("IH_TEST_DURATION", "not-a-duration")
	t.Setenv("IH_TEST_INT", "12x")
	t.Setenv("IH_TEST_INT32", "99999999999")
	t.Setenv("IH_TEST_BOOL", "maybe")

	require.Equal(t, 5*time.Second, getDurationEnv("IH_TEST_DURATION", 5*time.Second))
	require.Equal(t, 7, getIntEnv("IH_TEST_INT", 7))
	require.Equal(t, int32(3), getInt32Env("IH_TEST_INT32", 3))
	require.True(t, getBoolEnv("IH_TEST_BOOL", true))
}

func TestEnvHelpersParseValidValues(t *testing.T) {
	t.Setenv("IH_TEST_DURATION", "1500ms")
	t.Setenv("IH_TEST_INT", "42")
	t.Setenv("IH_TEST_INT32", "8")
	t.Setenv("IH_TEST_BOOL", "true")
	t.Setenv("IH_TEST_STRING", "")

	require.Equal(t, 1500*time.Millisecond, getDurationEnv("IH_TEST_DURATION", time.Second))
	require.Equal(t, 42, getIntEnv("IH_TEST_INT", 0))
	require.Equal(t, int32(8), getInt32Env("IH_TEST_INT32", 0))
	require.True(t, getBoolEnv("IH_TEST_BOOL", false))
	// An explicitly empty variable wins over the fallback.
	require.Equal(t, "", getEnv("IH_TEST_STRING", "fallback"))
	require.Equal(t, "fallback", getEnv("IH_TEST_UNSET_KEY", "fallback"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.env")
	t.Setenv("CATALOG_SOURCE", CatalogSourceEmbedded)

	cfg := LoadConfig()
	require.Equal(t, CatalogSourceEmbedded, cfg.CatalogSource)
	require.Equal(t, 1600*time.Millisecond, cfg.NotFoundRedirectDelay)
	require.Equal(t, ".vercel.app", cfg.SiteHostSuffix)
	require.Equal(t, "https://api.web3forms.com/submit", cfg.FormRelayURL)
}
