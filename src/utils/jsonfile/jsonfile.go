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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/renatgalimov/pipefog/src/utils"
)

// JsonFile stores one value of type T as indented JSON. Writes go through a
// temporary file in the same directory followed by a rename, so readers never
// observe a partially written file.
type JsonFile[T any] struct {
	sync.Mutex
	FilePath string
}

func NewJsonFile[T any](filePath string) *JsonFile[T] {
	return &JsonFile[T]{FilePath: filePath}
}

func (j *JsonFile[T]) Exists() bool {
	return utils.FileOrFolderExists(j.FilePath)
}

func (j *JsonFile[T]) Read() (*T, error) {
	j.Lock()
	defer j.Unlock()
	return j.read()
}

func (j *JsonFile[T]) read() (*T, error) {
	bs, err := os.ReadFile(j.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", j.FilePath, err)
	}
	if len(bs) == 0 {
		return nil, fmt.Errorf("file %s is empty", j.FilePath)
	}
	obj := new(T)
	err = json.Unmarshal(bs, obj)
	if err != nil {
		return nil, fmt.Errorf("unmarshal json from %s: %w", j.FilePath, err)
	}
	return obj, nil
}

func (j *JsonFile[T]) Write(obj *T) error {
	j.Lock()
	defer j.Unlock()
	return j.write(obj)
}

func (j *JsonFile[T]) write(obj *T) error {
	bs, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	bs = append(bs, '\n')

	dir := filepath.Dir(j.FilePath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(j.FilePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = tmp.Write(bs)
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write file %s: %w", tmpPath, err)
	}
	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		return fmt.Errorf("chmod file %s: %w", tmpPath, err)
	}
	err = os.Rename(tmpPath, j.FilePath)
	if err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpPath, j.FilePath, err)
	}
	return nil
}
