//go:build unit

/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renatgalimov/pipefog/src/config"
)

func TestConfigFileSetsFlags(t *testing.T) {
	configFile := setupConfigFile(t, `
log-level: warn
obfuscate:
  compact: true
  reference-time: "2000-01-01T00:00:00Z"
`)
	out, err := execute(t, `{"user":"secret"}`, "--config", configFile)
	require.NoError(t, err)
	assert.Equal(t, "{\"user\":\"onendt\"}\n", out)
	assert.Equal(t, config.WARN, config.LogLevel)
}

func TestConfigFileFromEnv(t *testing.T) {
	configFile := setupConfigFile(t, `
obfuscate:
  compact: true
  reference-time: "2000-01-01T00:00:00Z"
`)
	t.Setenv("HOME", t.TempDir())
	resetFlags(t)
	t.Setenv(CONFIG_FILE_ENV_VAR, configFile)

	overrides, err := initConfig(rootCmd)
	require.NoError(t, err)
	assert.ElementsMatch(t, []ConfigFlagOverride{
		{FlagName: "compact", ConfigKey: "obfuscate.compact", Value: "true"},
		{FlagName: "reference-time", ConfigKey: "obfuscate.reference-time", Value: "2000-01-01T00:00:00Z"},
	}, overrides)
	resetFlags(t)
}

func TestConfigFileInHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(CONFIG_FILE_ENV_VAR, "")
	resetFlags(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, DEFAULT_CONFIG_FILE_NAME+".yaml"), []byte("log-level: error\n"), 0644))

	overrides, err := initConfig(rootCmd)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "log-level", overrides[0].ConfigKey)
	resetFlags(t)
}

func TestCLIOverridesConfig(t *testing.T) {
	configFile := setupConfigFile(t, `
obfuscate:
  compact: true
  reference-time: "1990-06-01T00:00:00Z"
`)
	out, err := execute(t, `{"t":"2025-05-07T11:58:32Z"}`, "--config", configFile, "--reference-time", testReferenceTime)
	require.NoError(t, err)
	assert.Equal(t, "{\"t\":\"2000-01-01T00:00:00Z\"}\n", out)
}

func TestInvalidConfigKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "global key", content: "colour: red\n"},
		{name: "section key", content: "obfuscate:\n  colour: red\n"},
		{name: "section", content: "classify:\n  compact: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := setupConfigFile(t, tt.content)
			_, err := execute(t, `{}`, "--config", configFile)
			assert.ErrorContains(t, err, "found invalid configurations in config file")
		})
	}
}

func TestInvalidConfigValue(t *testing.T) {
	configFile := setupConfigFile(t, "obfuscate:\n  seed: lots\n")
	_, err := execute(t, `{}`, "--config", configFile)
	assert.ErrorContains(t, err, `config key "obfuscate.seed"`)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := execute(t, `{}`, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestConfigKeyPrefix(t *testing.T) {
	root := &cobra.Command{Use: "pipefog"}
	child := &cobra.Command{Use: "syllable-frequency"}
	root.AddCommand(child)
	assert.Equal(t, ROOT_CONFIG_SECTION, configKeyPrefix(root))
	assert.Equal(t, "syllable-frequency", configKeyPrefix(child))
}

func TestBindCobraFlagsToViperPrefersSectionKey(t *testing.T) {
	cmd := &cobra.Command{Use: "pipefog"}
	var lines bool
	var level string
	cmd.Flags().BoolVar(&lines, "lines", false, "")
	cmd.Flags().StringVar(&level, "log-level", "info", "")

	v := viper.New()
	v.Set("obfuscate.lines", true)
	v.Set("log-level", "debug")

	overrides, err := bindCobraFlagsToViper(cmd, v)
	require.NoError(t, err)
	assert.True(t, lines)
	assert.Equal(t, "debug", level)
	assert.Len(t, overrides, 2)
}

func TestHomeRelativePathsAreExpanded(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "fog.yaml"), []byte(`
obfuscate:
  compact: true
  state-file: "~/baseline.json"
  reference-time: "2000-01-01T00:00:00Z"
`), 0644))

	resetFlags(t)
	t.Setenv("HOME", home)
	t.Setenv(CONFIG_FILE_ENV_VAR, "~/fog.yaml")
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(`{"t":"2025-05-07T11:58:32Z"}`))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "{\"t\":\"2000-01-01T00:00:00Z\"}\n", out.String())
	assert.Equal(t, filepath.Join(home, "baseline.json"), stateFilePath)
	assert.FileExists(t, filepath.Join(home, "baseline.json"))
	resetFlags(t)
}
