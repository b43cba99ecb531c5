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
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/renatgalimov/pipefog/src/anon"
	"github.com/renatgalimov/pipefog/src/docstream"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [value...]",
	Short: "Show the format class pipefog assigns to each value.",
	Long: `Show the format class pipefog assigns to each value. Values are taken from the
arguments, or one per line from stdin when no arguments are given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		values := args
		if len(values) == 0 {
			var err error
			values, err = readLines(cmd)
			if err != nil {
				return err
			}
		}
		if len(values) == 0 {
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), classifyTable(values))
		return nil
	},
}

func classifyTable(values []string) *uitable.Table {
	uiTable := uitable.New()
	uiTable.MaxColWidth = 60
	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	otherfmt := color.New(color.FgYellow).SprintFunc()
	uiTable.AddRow(headerfmt("VALUE"), headerfmt("CLASS"))
	for _, value := range values {
		class := anon.Classify(value)
		if class == anon.OTHER {
			uiTable.AddRow(value, otherfmt(class))
		} else {
			uiTable.AddRow(value, class)
		}
	}
	return uiTable
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), docstream.MAX_LINE_SIZE)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
