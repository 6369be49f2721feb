// Copyright 2025 Patrick J. Scruggs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hostlog

import (
	"errors"
	"fmt"
)

var (
	// ErrNilHost is returned by [New] when no host is supplied.
	ErrNilHost = errors.New("hostlog: nil host")

	// ErrInvalidConfig reports an unusable configuration value.
	ErrInvalidConfig = errors.New("hostlog: invalid configuration")
)

// HostOp names the host interaction that failed.
type HostOp string

// Host operations reported in [HostError].
const (
	OpGetLogger    HostOp = "get logger"
	OpIsEnabledFor HostOp = "is enabled for"
	OpNewRecord    HostOp = "new record"
	OpHandle       HostOp = "handle"
	OpProbeLevel   HostOp = "probe level"
)

// HostError describes a failed call into the host while logging. It is
// passed to [Host.ReportError] and never returned to the logging caller.
type HostError struct {
	Op     HostOp
	Target string
	Err    error
}

// Error implements error.
func (e *HostError) Error() string {
	return fmt.Sprintf("hostlog: %s for target %q: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying host error.
func (e *HostError) Unwrap() error {
	return e.Err
}

// panicError wraps a value recovered from a panicking host call.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
