package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirFlag(t *testing.T) {
	f := pflag.Lookup("config-dir")
	require.NotNil(t, f, "the config-dir flag should be registered")
	assert.Equal(t, ".", f.DefValue, "config.toml is searched in the working directory by default")
}
