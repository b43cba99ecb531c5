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
	"fmt"
	"os"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/renatgalimov/pipefog/src/utils"
)

const (
	CONFIG_FILE_ENV_VAR      = "PIPEFOG_CONFIG_FILE"
	DEFAULT_CONFIG_FILE_NAME = "pipefog-config"

	// The root command has no path of its own, its flags live under this section.
	ROOT_CONFIG_SECTION = "obfuscate"
)

var allowedGlobalConfigKeys = mapset.NewThreadUnsafeSet[string](
	"log-level", "log-dir",
)

var allowedObfuscateConfigKeys = mapset.NewThreadUnsafeSet[string](
	"input", "output", "lines", "compact", "reference-time", "seed", "state-file",
)

var allowedConfigSections = map[string]mapset.Set[string]{
	ROOT_CONFIG_SECTION: allowedObfuscateConfigKeys,
}

// ConfigFlagOverride is a CLI flag whose value was taken from the config file.
type ConfigFlagOverride struct {
	FlagName  string
	ConfigKey string
	Value     string
}

/*
initConfig loads the config file for cmd into a fresh viper instance, validates
its keys and copies the values onto every flag the user did not set on the
command line.

	Config file precedence: --config > $PIPEFOG_CONFIG_FILE > ~/pipefog-config.yaml
	Value precedence: CLI > config file > flag default
*/
func initConfig(cmd *cobra.Command) ([]ConfigFlagOverride, error) {
	v := viper.New()

	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv(CONFIG_FILE_ENV_VAR)
	}
	if explicit != "" {
		path, err := utils.ExpandHome(explicit)
		if err != nil {
			return nil, fmt.Errorf("resolve config file path %q: %w", explicit, err)
		}
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(DEFAULT_CONFIG_FILE_NAME)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	err := validateConfigFile(v)
	if err != nil {
		return nil, err
	}

	overrides, err := bindCobraFlagsToViper(cmd, v)
	if err != nil {
		return nil, fmt.Errorf("failed to bind cobra flags to viper: %w", err)
	}
	return overrides, nil
}

// validateConfigFile reports unknown global keys, unknown sections and unknown
// keys inside known sections, all at once.
func validateConfigFile(v *viper.Viper) error {
	invalidGlobalKeys := mapset.NewThreadUnsafeSet[string]()
	invalidSectionKeys := make(map[string]mapset.Set[string])
	invalidSections := mapset.NewThreadUnsafeSet[string]()

	for _, key := range v.AllKeys() {
		section, nestedKey, nested := strings.Cut(key, ".")
		if !nested {
			if !allowedGlobalConfigKeys.Contains(key) {
				invalidGlobalKeys.Add(key)
			}
			continue
		}
		allowedKeys, ok := allowedConfigSections[section]
		if !ok {
			invalidSections.Add(section)
			continue
		}
		if !allowedKeys.Contains(nestedKey) {
			if _, exists := invalidSectionKeys[section]; !exists {
				invalidSectionKeys[section] = mapset.NewThreadUnsafeSet[string]()
			}
			invalidSectionKeys[section].Add(nestedKey)
		}
	}

	if invalidGlobalKeys.Cardinality() == 0 && len(invalidSectionKeys) == 0 && invalidSections.Cardinality() == 0 {
		return nil
	}
	if invalidGlobalKeys.Cardinality() > 0 {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString("Invalid global config keys:"), joinSorted(invalidGlobalKeys))
	}
	for section, keys := range invalidSectionKeys {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString(fmt.Sprintf("Invalid keys in section '%s':", section)), joinSorted(keys))
	}
	if invalidSections.Cardinality() > 0 {
		fmt.Fprintf(os.Stderr, "%s [%s]\n", color.RedString("Invalid sections:"), joinSorted(invalidSections))
	}
	return fmt.Errorf("found invalid configurations in config file: %s", v.ConfigFileUsed())
}

func joinSorted(set mapset.Set[string]) string {
	items := set.ToSlice()
	sort.Strings(items)
	return strings.Join(items, ", ")
}

// configKeyPrefix maps "pipefog foo bar" to "foo-bar" and the root command to ROOT_CONFIG_SECTION.
func configKeyPrefix(cmd *cobra.Command) string {
	subCmdPath := strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()))
	if subCmdPath == "" {
		return ROOT_CONFIG_SECTION
	}
	return strings.ReplaceAll(subCmdPath, " ", "-")
}

// bindCobraFlagsToViper sets every unchanged flag of cmd from "<section>.<flag>"
// or, failing that, from the global "<flag>" key.
func bindCobraFlagsToViper(cmd *cobra.Command, v *viper.Viper) ([]ConfigFlagOverride, error) {
	var bindErr error
	var overrides []ConfigFlagOverride
	prefix := configKeyPrefix(cmd)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed {
			return
		}
		for _, key := range []string{prefix + "." + f.Name, f.Name} {
			if !v.IsSet(key) {
				continue
			}
			val := v.GetString(key)
			err := cmd.Flags().Set(f.Name, val)
			if err != nil {
				bindErr = fmt.Errorf("config key %q: %w", key, err)
				return
			}
			overrides = append(overrides, ConfigFlagOverride{
				FlagName:  f.Name,
				ConfigKey: key,
				Value:     val,
			})
			return
		}
	})
	return overrides, bindErr
}
