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
package jsonwalk

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// StringVisitor returns the replacement for one string leaf.
type StringVisitor func(s string) (string, error)

// LeafError reports the failing leaf of a walk by its JSON path.
type LeafError struct {
	Path string
	Err  error
}

func (e *LeafError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Path, e.Err)
}

func (e *LeafError) Unwrap() error {
	return e.Err
}

// Walk replaces every string value reachable from value with the result of
// visit. value is expected to be a tree produced by encoding/json (maps with
// string keys, slices, strings, json.Number or float64, bools, nil). Object keys
// and non-string scalars are left unchanged. Maps and slices are modified in place.
// Object members are visited in sorted key order, so visitors with state (the
// timestamp anchor) see the same sequence on every run.
func Walk(value any, visit StringVisitor) (any, error) {
	return walk(value, "$", visit)
}

func walk(value any, path string, visit StringVisitor) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		keys := lo.Keys(v)
		slices.Sort(keys)
		for _, key := range keys {
			replaced, err := walk(v[key], childPath(path, key), visit)
			if err != nil {
				return nil, err
			}
			v[key] = replaced
		}
		return v, nil
	case []any:
		for i, child := range v {
			replaced, err := walk(child, path+"["+strconv.Itoa(i)+"]", visit)
			if err != nil {
				return nil, err
			}
			v[i] = replaced
		}
		return v, nil
	case string:
		replaced, err := visit(v)
		if err != nil {
			return nil, &LeafError{Path: path, Err: err}
		}
		return replaced, nil
	default:
		return value, nil
	}
}

func childPath(parent, key string) string {
	if key != "" && strings.IndexFunc(key, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) < 0 {
		return parent + "." + key
	}
	return parent + "[" + strconv.Quote(key) + "]"
}
