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
package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOrFolderExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileOrFolderExists(dir))
	assert.False(t, FileOrFolderExists(filepath.Join(dir, "missing")))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := ExpandHome("~/pipefog-config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pipefog-config.yaml"), path)

	path, err = ExpandHome("/etc/pipefog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/pipefog.yaml", path)

	path, err = ExpandHome("~other/file")
	require.NoError(t, err)
	assert.Equal(t, "~other/file", path)
}

func TestErrExitUsesHook(t *testing.T) {
	code := -1
	SetExitHook(func(c int) { code = c })
	defer SetExitHook(nil)

	cause := errors.New("disk full")
	ErrExit("write output: %w", cause)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, ErrExitErr, cause)
}
