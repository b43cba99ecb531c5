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

	"github.com/spf13/cobra"

	"github.com/renatgalimov/pipefog/src/anon"
)

var humaniseCmd = &cobra.Command{
	Use:   "humanise",
	Short: "Render bytes from stdin as syllables.",
	Long: `Render bytes from stdin as syllables, one syllable per byte. Input that is an
even-length hex string (whitespace ignored) is decoded first, so a digest printed by
sha3sum can be piped in directly.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), anon.HumaniseBytes(anon.DecodeHumaniseInput(raw)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(humaniseCmd)
}
