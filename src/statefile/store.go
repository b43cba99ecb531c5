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
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nightlyone/lockfile"
	log "github.com/sirupsen/logrus"

	"github.com/renatgalimov/pipefog/src/anon"
	"github.com/renatgalimov/pipefog/src/utils/jsonfile"
)

// ErrLocked is returned by Lock when another process holds the state file.
var ErrLocked = errors.New("state file is in use by another process")

// BaselineState is the persisted form of an anon.TimestampBaseline.
type BaselineState struct {
	ReferenceTime time.Time  `json:"reference_time"`
	AnchorTime    *time.Time `json:"anchor_time,omitempty"`
}

func NewBaselineState(baseline *anon.TimestampBaseline) *BaselineState {
	state := &BaselineState{ReferenceTime: baseline.Reference()}
	if anchor, ok := baseline.Anchor(); ok {
		state.AnchorTime = &anchor
	}
	return state
}

func (s *BaselineState) Baseline() *anon.TimestampBaseline {
	return anon.RestoreTimestampBaseline(s.ReferenceTime, s.AnchorTime)
}

// Store keeps a BaselineState on disk so that several runs map timestamps
// onto the same baseline.
type Store struct {
	file     *jsonfile.JsonFile[BaselineState]
	lockPath string
	lock     *lockfile.Lockfile
}

func NewStore(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state file path %q: %w", path, err)
	}
	return &Store{
		file:     jsonfile.NewJsonFile[BaselineState](abs),
		lockPath: abs + ".lck",
	}, nil
}

func (s *Store) Path() string {
	return s.file.FilePath
}

// Load returns nil, nil when no state has been saved yet.
func (s *Store) Load() (*BaselineState, error) {
	if !s.file.Exists() {
		return nil, nil
	}
	state, err := s.file.Read()
	if err != nil {
		return nil, fmt.Errorf("load baseline state: %w", err)
	}
	if state.ReferenceTime.IsZero() {
		return nil, fmt.Errorf("load baseline state: %s has no reference_time", s.file.FilePath)
	}
	log.Infof("loaded baseline state from %s", s.file.FilePath)
	return state, nil
}

func (s *Store) Save(state *BaselineState) error {
	err := s.file.Write(state)
	if err != nil {
		return fmt.Errorf("save baseline state: %w", err)
	}
	log.Infof("saved baseline state to %s", s.file.FilePath)
	return nil
}

// Lock takes the lock file next to the state file. lockfile.New requires an
// absolute path, which NewStore guarantees.
func (s *Store) Lock() error {
	lf, err := lockfile.New(s.lockPath)
	if err != nil {
		return fmt.Errorf("create lockfile %q: %w", s.lockPath, err)
	}
	err = lf.TryLock()
	if errors.Is(err, lockfile.ErrBusy) {
		return fmt.Errorf("%w: %s", ErrLocked, s.lockPath)
	}
	if err != nil {
		return fmt.Errorf("lock %q: %w", s.lockPath, err)
	}
	s.lock = &lf
	return nil
}

func (s *Store) Unlock() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	if err != nil {
		return fmt.Errorf("unlock %q: %w", s.lockPath, err)
	}
	s.lock = nil
	return nil
}
