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
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/renatgalimov/pipefog/src/anon"
)

var syllableFrequencyCmd = &cobra.Command{
	Use:   "syllable-frequency",
	Short: "Count rough English syllables of the words read from stdin.",
	Long: `Count rough English syllables of the words read from stdin. Prints one
"<syllable> <count>" line per distinct syllable, sorted by syllable.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		counts := anon.CountSyllables(string(raw))
		log.Infof("counted %s distinct syllables in %s", humanize.Comma(int64(len(counts))), humanize.Bytes(uint64(len(raw))))

		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, c := range counts {
			fmt.Fprintf(w, "%s %d\n", c.Syllable, c.Count)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(syllableFrequencyCmd)
}
