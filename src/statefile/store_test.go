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
package statefile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renatgalimov/pipefog/src/anon"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "baseline.json"))
	require.NoError(t, err)
	return store
}

func TestLoadMissingStateFile(t *testing.T) {
	store := newTestStore(t)
	state, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	baseline := anon.NewTimestampBaseline(reference)
	baseline.Translate(time.Date(2025, 5, 7, 11, 58, 32, 0, time.UTC))

	require.NoError(t, store.Save(NewBaselineState(baseline)))

	state, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.True(t, reference.Equal(state.ReferenceTime))
	require.NotNil(t, state.AnchorTime)

	restored := state.Baseline()
	next := restored.Translate(time.Date(2025, 5, 8, 11, 58, 32, 0, time.UTC))
	assert.Equal(t, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), next)
}

func TestUnanchoredStateOmitsAnchor(t *testing.T) {
	store := newTestStore(t)
	baseline := anon.NewTimestampBaseline(time.Date(2010, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(NewBaselineState(baseline)))

	bs, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(bs), "anchor_time")

	state, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, state.AnchorTime)
	_, anchored := state.Baseline().Anchor()
	assert.False(t, anchored)
}

func TestLoadRejectsStateWithoutReference(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{}`), 0644))
	_, err := store.Load()
	assert.ErrorContains(t, err, "reference_time")
}

func TestLockAndUnlock(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Lock())
	assert.FileExists(t, store.Path()+".lck")
	require.NoError(t, store.Unlock())
	assert.NoFileExists(t, store.Path()+".lck")
	assert.NoError(t, store.Unlock())
}

func TestLockHeldByAnotherProcess(t *testing.T) {
	store := newTestStore(t)
	// The parent process is alive for the duration of the test.
	require.NoError(t, os.WriteFile(store.Path()+".lck", []byte(fmt.Sprintf("%d\n", os.Getppid())), 0644))

	err := store.Lock()
	assert.ErrorIs(t, err, ErrLocked)
}
