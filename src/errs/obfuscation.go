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

package errs

import (
	"errors"
	"fmt"
)

// ErrPreconditionViolated is returned when a value is handed to an obfuscator
// whose format class it does not belong to.
var ErrPreconditionViolated = errors.New("value does not satisfy the format class precondition")

// ErrDatetimeOutOfRange is returned when a shifted timestamp leaves years 0000-9999.
var ErrDatetimeOutOfRange = errors.New("shifted datetime is outside years 0000-9999")

// ObfuscationError reports a failure to obfuscate one value. The original value
// is never included in the message.
type ObfuscationError struct {
	class string // format class selected for the value
	err   error  // underlying error
}

func NewObfuscationError(class string, err error) *ObfuscationError {
	return &ObfuscationError{
		class: class,
		err:   err,
	}
}

func (e *ObfuscationError) Error() string {
	return fmt.Sprintf("error obfuscating %s value: %s", e.class, e.err.Error())
}

func (e *ObfuscationError) Class() string {
	return e.class
}

func (e *ObfuscationError) Unwrap() error {
	return e.err
}

// DocumentError reports a failure at a specific location of a document stream.
type DocumentError struct {
	document int    // 1-based index of the document in the stream
	path     string // JSON path of the failing leaf, empty when the document itself is invalid
	err      error
}

func NewDocumentError(document int, path string, err error) *DocumentError {
	return &DocumentError{
		document: document,
		path:     path,
		err:      err,
	}
}

func (e *DocumentError) Error() string {
	if e.path != "" {
		return fmt.Sprintf("document %d at %s: %s", e.document, e.path, e.err.Error())
	}
	return fmt.Sprintf("document %d: %s", e.document, e.err.Error())
}

func (e *DocumentError) Document() int {
	return e.document
}

func (e *DocumentError) Path() string {
	return e.path
}

func (e *DocumentError) Unwrap() error {
	return e.err
}
