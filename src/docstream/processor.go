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
package docstream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/renatgalimov/pipefog/src/anon"
	"github.com/renatgalimov/pipefog/src/config"
	"github.com/renatgalimov/pipefog/src/errs"
	"github.com/renatgalimov/pipefog/src/jsonwalk"
)

// MAX_LINE_SIZE bounds one document in line-delimited mode.
const MAX_LINE_SIZE = 64 * 1024 * 1024

// Obfuscator is the part of anon.FormatAnonymizer the processor needs.
type Obfuscator interface {
	Obfuscate(value string) (string, anon.FormatClass, error)
}

type Options struct {
	// Pretty indents output with two spaces, otherwise one compact document per line.
	Pretty bool
	// LineDelimited reads one document per line and skips lines that are not valid JSON.
	LineDelimited bool
}

type Stats struct {
	Documents        int64
	SkippedDocuments int64
	Strings          map[anon.FormatClass]int64
}

func newStats() *Stats {
	return &Stats{Strings: make(map[anon.FormatClass]int64)}
}

func (s *Stats) countString(class anon.FormatClass) {
	s.Strings[class]++
}

func (s *Stats) TotalStrings() int64 {
	return lo.Sum(lo.Values(s.Strings))
}

// Summary renders the counters on one line, classes in priority order.
func (s *Stats) Summary() string {
	parts := []string{
		fmt.Sprintf("documents=%s", humanize.Comma(s.Documents)),
		fmt.Sprintf("skipped=%s", humanize.Comma(s.SkippedDocuments)),
		fmt.Sprintf("strings=%s", humanize.Comma(s.TotalStrings())),
	}
	for _, class := range anon.Classes() {
		if n := s.Strings[class]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", class, humanize.Comma(n)))
		}
	}
	return strings.Join(parts, " ")
}

// Processor reads JSON documents, obfuscates every string value and writes the
// documents back out in the order they were read.
type Processor struct {
	obfuscator Obfuscator
	opts       Options
}

func NewProcessor(obfuscator Obfuscator, opts Options) *Processor {
	return &Processor{
		obfuscator: obfuscator,
		opts:       opts,
	}
}

func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) (*Stats, error) {
	stats := newStats()
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if p.opts.Pretty {
		enc.SetIndent("", "  ")
	}

	var err error
	if p.opts.LineDelimited {
		err = p.processLines(ctx, r, enc, stats)
	} else {
		err = p.processStream(ctx, r, enc, stats)
	}
	flushErr := bw.Flush()
	if err != nil {
		return stats, err
	}
	if flushErr != nil {
		return stats, fmt.Errorf("flush output: %w", flushErr)
	}
	log.Infof("processed %s", stats.Summary())
	return stats, nil
}

func (p *Processor) processStream(ctx context.Context, r io.Reader, enc *json.Encoder, stats *Stats) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			log.Errorf("error parsing JSON document %d: %v", n, err)
			return errs.NewDocumentError(n, "", fmt.Errorf("parse JSON: %w", err))
		}
		if err := p.emit(n, doc, enc, stats); err != nil {
			return err
		}
	}
}

func (p *Processor) processLines(ctx context.Context, r io.Reader, enc *json.Encoder, stats *Stats) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MAX_LINE_SIZE)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		doc, err := decodeOne(line)
		if err != nil {
			log.Warnf("skipping line %d: not a valid JSON document: %v", n, err)
			stats.SkippedDocuments++
			continue
		}
		if err := p.emit(n, doc, enc, stats); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// decodeOne decodes exactly one JSON value from line, trailing data is an error.
func decodeOne(line string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return doc, nil
}

func (p *Processor) emit(n int, doc any, enc *json.Encoder, stats *Stats) error {
	var count int
	out, err := jsonwalk.Walk(doc, func(s string) (string, error) {
		replaced, class, err := p.obfuscator.Obfuscate(s)
		if err != nil {
			return "", err
		}
		stats.countString(class)
		count++
		return replaced, nil
	})
	if err != nil {
		var leafErr *jsonwalk.LeafError
		if errors.As(err, &leafErr) {
			return errs.NewDocumentError(n, leafErr.Path, leafErr.Err)
		}
		return errs.NewDocumentError(n, "", err)
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write document %d: %w", n, err)
	}
	stats.Documents++
	if config.IsLogLevelDebugOrBelow() {
		log.Debugf("document %d: obfuscated %d strings", n, count)
	}
	return nil
}
