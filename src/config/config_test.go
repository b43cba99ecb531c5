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
package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestValidateLogLevel(t *testing.T) {
	defer func() { LogLevel = INFO }()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "info", want: INFO},
		{input: "DEBUG", want: DEBUG},
		{input: " Warn ", want: WARN},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			LogLevel = tt.input
			err := ValidateLogLevel()
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid log level")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, LogLevel)
		})
	}
}

func TestLogLevelHelpers(t *testing.T) {
	defer func() { LogLevel = INFO }()

	LogLevel = TRACE
	assert.True(t, IsLogLevelDebugOrBelow())
	assert.False(t, IsLogLevelErrorOrAbove())
	assert.Equal(t, log.TraceLevel, LogrusLevel())

	LogLevel = FATAL
	assert.False(t, IsLogLevelDebugOrBelow())
	assert.True(t, IsLogLevelErrorOrAbove())
	assert.Equal(t, log.FatalLevel, LogrusLevel())
}
