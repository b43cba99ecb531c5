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
package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonFile(t *testing.T) {
	type Person struct {
		Name string
	}
	var person *Person
	jf := NewJsonFile[Person](filepath.Join(t.TempDir(), "person.json"))
	assert.False(t, jf.Exists())
	person, err := jf.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, person)
	err = jf.Write(&Person{Name: "John Doe"})
	assert.Nil(t, err)
	assert.True(t, jf.Exists())
	person, err = jf.Read()
	assert.Nil(t, err)
	assert.NotNil(t, person)
	assert.Equal(t, "John Doe", person.Name)
	err = jf.Write(&Person{Name: "John Smith"})
	assert.Nil(t, err)
	person, err = jf.Read()
	assert.Nil(t, err)
	assert.Equal(t, "John Smith", person.Name)
}

func TestJsonFileWriteLeavesNoTempFiles(t *testing.T) {
	type Counter struct {
		N int `json:"n"`
	}
	dir := t.TempDir()
	jf := NewJsonFile[Counter](filepath.Join(dir, "counter.json"))
	for i := 1; i <= 3; i++ {
		require.NoError(t, jf.Write(&Counter{N: i}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "counter.json", entries[0].Name())

	bs, err := os.ReadFile(jf.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"n\": 3\n}\n", string(bs))
}

func TestJsonFileEmptyAndCorrupt(t *testing.T) {
	type Person struct {
		Name string
	}
	path := filepath.Join(t.TempDir(), "person.json")
	jf := NewJsonFile[Person](path)

	require.NoError(t, os.WriteFile(path, nil, 0644))
	_, err := jf.Read()
	assert.ErrorContains(t, err, "is empty")

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = jf.Read()
	assert.ErrorContains(t, err, "unmarshal json")
}
