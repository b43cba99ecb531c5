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
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/renatgalimov/pipefog/src/config"
)

type MyFormatter struct{}

var levelList = []string{
	"PANIC",
	"FATAL",
	"ERROR",
	"WARN",
	"INFO",
	"DEBUG",
	"TRACE",
}

func (mf *MyFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := levelList[int(entry.Level)]
	caller := "-"
	if entry.HasCaller() {
		caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	// Example log line:
	// 2025-05-07 11:58:32 INFO root.go:97 processed documents=2 skipped=0 strings=5
	msg := fmt.Sprintf("%s %s %s %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level, caller,
		strings.TrimSuffix(entry.Message, "\n"))
	return []byte(msg), nil
}

// InitLogging sends log output to ${logDir}/logs/pipefog.log, rotated by
// lumberjack, or to stderr when logDir is empty. stdout is reserved for data.
func InitLogging(logDir string, cmdName string) {
	var out io.Writer = os.Stderr
	if logDir != "" {
		// lumberjack creates the "logs" folder when it does not exist.
		out = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "logs", "pipefog.log"),
			MaxSize:    200, // 200 MB log size before rotation
			MaxBackups: 10,
		}
	}
	log.SetOutput(out)
	log.SetLevel(config.LogrusLevel())
	log.SetReportCaller(true)
	log.SetFormatter(&MyFormatter{})
	log.Debugf("Logging initialised for %q.", cmdName)
	log.Debugf("\n%s", getVersionInfo())
}
