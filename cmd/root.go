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
	"io"
	"math/rand/v2"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/renatgalimov/pipefog/src/anon"
	"github.com/renatgalimov/pipefog/src/config"
	"github.com/renatgalimov/pipefog/src/docstream"
	"github.com/renatgalimov/pipefog/src/statefile"
	"github.com/renatgalimov/pipefog/src/utils"
)

var (
	cfgFile string
	logDir  string

	inputPath     string
	outputPath    string
	lineDelimited bool
	compact       bool
	referenceTime string
	seed          uint64
	stateFilePath string
)

var rootCmd = &cobra.Command{
	Use:   "pipefog",
	Short: "Anonymize a stream of JSON documents while keeping the shape of every string",
	Long: `pipefog reads JSON documents and replaces every string value with a deterministic
substitute of the same format: words stay words of the same length and case, snake_case stays
snake_case, base32 stays base32 and ISO-8601 UTC timestamps are moved onto a baseline that keeps
their order and spacing. Object keys, numbers, booleans and nulls are left untouched.

Documents are read from --input (default stdin) and written to --output (default stdout).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := initConfig(cmd)
		if err != nil {
			return err
		}
		err = config.ValidateLogLevel()
		if err != nil {
			return err
		}
		err = expandPathFlags()
		if err != nil {
			return err
		}
		InitLogging(logDir, cmd.CommandPath())
		for _, o := range overrides {
			log.Infof("flag %q set from config key %q", o.FlagName, o.ConfigKey)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return obfuscateCommandFn(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		utils.ErrExit("Error: %s", err)
	}
	atexit.Exit(0)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	registerCommonGlobalFlags(rootCmd)

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "",
		"file to read JSON documents from (default stdin)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"file to write anonymized documents to (default stdout)")
	rootCmd.Flags().BoolVar(&lineDelimited, "lines", false,
		"read one JSON document per line and skip lines that are not valid JSON")
	rootCmd.Flags().BoolVar(&compact, "compact", false,
		"write each document on a single line instead of indenting it")
	rootCmd.Flags().StringVar(&referenceTime, "reference-time", "",
		"RFC-3339 instant the first timestamp is mapped to (default random)")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0,
		"seed for the random reference instant, 0 picks a new one every run")
	rootCmd.Flags().StringVar(&stateFilePath, "state-file", "",
		"JSON file that keeps the timestamp baseline across runs")
}

func registerCommonGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("config file (default $%s or ~/%s.yaml)", CONFIG_FILE_ENV_VAR, DEFAULT_CONFIG_FILE_NAME))
	cmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"directory for rotated log files (default log to stderr)")
	cmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", config.INFO,
		"log level: trace, debug, info, warn, error, fatal, panic")
}

// expandPathFlags resolves "~/" in path flags, which the shell does not expand
// for values taken from the config file.
func expandPathFlags() error {
	for _, path := range []*string{&logDir, &inputPath, &outputPath, &stateFilePath} {
		expanded, err := utils.ExpandHome(*path)
		if err != nil {
			return fmt.Errorf("resolve path %q: %w", *path, err)
		}
		*path = expanded
	}
	return nil
}

func obfuscateCommandFn(cmd *cobra.Command) error {
	var store *statefile.Store
	if stateFilePath != "" {
		var err error
		store, err = statefile.NewStore(stateFilePath)
		if err != nil {
			return err
		}
		err = store.Lock()
		if err != nil {
			return err
		}
		atexit.Register(func() {
			if err := store.Unlock(); err != nil {
				log.Warnf("%v", err)
			}
		})
		defer store.Unlock()
	}

	baseline, err := resolveBaseline(store, time.Now())
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}

	processor := docstream.NewProcessor(anon.NewFormatAnonymizer(baseline), docstream.Options{
		Pretty:        !compact,
		LineDelimited: lineDelimited,
	})
	stats, err := processor.Process(cmd.Context(), in, out)
	closeErr := closeOut()
	if err != nil {
		return fmt.Errorf("after %d documents: %w", stats.Documents, err)
	}
	if closeErr != nil {
		return closeErr
	}

	if store != nil {
		err = store.Save(statefile.NewBaselineState(baseline))
		if err != nil {
			return err
		}
	}
	return nil
}

// resolveBaseline picks the timestamp baseline: a saved state file first, then
// --reference-time, then --seed, then a random reference.
func resolveBaseline(store *statefile.Store, now time.Time) (*anon.TimestampBaseline, error) {
	if store != nil {
		state, err := store.Load()
		if err != nil {
			return nil, err
		}
		if state != nil {
			if referenceTime != "" || seed != 0 {
				log.Warnf("baseline loaded from %s, ignoring --reference-time and --seed", store.Path())
			}
			return state.Baseline(), nil
		}
	}
	if referenceTime != "" {
		t, err := time.Parse(time.RFC3339, referenceTime)
		if err != nil {
			return nil, fmt.Errorf("invalid --reference-time %q: %w", referenceTime, err)
		}
		return anon.NewTimestampBaseline(t), nil
	}
	if seed != 0 {
		return anon.NewSeededTimestampBaseline(seed, now), nil
	}
	return anon.NewRandomTimestampBaseline(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), now), nil
}

func openInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if inputPath == "" || inputPath == "-" {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) && !config.IsLogLevelErrorOrAbove() {
			utils.PrintAndLog("Reading JSON documents from the terminal, press Ctrl-D to finish.")
		}
		return in, func() {}, nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputPath == "" || outputPath == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		return nil
	}, nil
}
