package config_test

import (
	"testing"
	"time"

	"github.com/limbo/galaxy/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	cfg := config.New()
	t.Setenv("GALAXY_TEST_STRING", "value")
	t.Setenv("GALAXY_TEST_DURATION", "90m")
	t.Setenv("GALAXY_TEST_BAD_DURATION", "soon")
	t.Setenv("GALAXY_TEST_BOOL", "true")

	assert.Equal(t, "value", cfg.GetString("GALAXY_TEST_STRING"))
	assert.Equal(t, "value", cfg.GetStringOr("GALAXY_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", cfg.GetStringOr("GALAXY_TEST_UNSET", "fallback"))
	assert.Equal(t, 90*time.Minute, cfg.GetDuration("GALAXY_TEST_DURATION", time.Hour))
	assert.Equal(t, time.Hour, cfg.GetDuration("GALAXY_TEST_BAD_DURATION", time.Hour))
	assert.Equal(t, time.Hour, cfg.GetDuration("GALAXY_TEST_UNSET", time.Hour))
	assert.True(t, cfg.GetBool("GALAXY_TEST_BOOL", false))
	assert.True(t, cfg.GetBool("GALAXY_TEST_UNSET", true))
	assert.False(t, cfg.GetBool("GALAXY_TEST_STRING", false))
}
