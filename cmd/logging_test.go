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
	"runtime"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyFormatter(t *testing.T) {
	entry := &log.Entry{
		Time:    time.Date(2025, 5, 7, 11, 58, 32, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "skipping line 2\n",
		Caller:  &runtime.Frame{File: "/src/docstream/processor.go", Line: 144},
	}
	entry.Logger = log.New()
	entry.Logger.SetReportCaller(true)

	bs, err := (&MyFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-07 11:58:32 WARN processor.go:144 skipping line 2\n", string(bs))
}

func TestMyFormatterWithoutCaller(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Time:    time.Date(2025, 5, 7, 11, 58, 32, 0, time.UTC),
		Level:   log.InfoLevel,
		Message: "processed",
	}
	bs, err := (&MyFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-07 11:58:32 INFO - processed\n", string(bs))
}
