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

package hostloggrpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/pjscruggs/hostlog"
)

// ErrForeignRecord is returned when a logger is asked to handle a record
// that was not built by [Client.NewRecord].
var ErrForeignRecord = errors.New("hostloggrpc: record not created by this client")

// Client is a [hostlog.Host] backed by a remote HostLogging service.
//
// Its lock serializes the calls made by this process. The server takes the
// real host lock around each call it forwards.
type Client struct {
	mu      sync.Mutex
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewClient returns a host client using conn.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	cfg := applyOptions(opts)
	return &Client{conn: conn, timeout: cfg.callTimeout}
}

// Lock implements [sync.Locker].
func (c *Client) Lock() { c.mu.Lock() }

// Unlock implements [sync.Locker].
func (c *Client) Unlock() { c.mu.Unlock() }

func (c *Client) invoke(method string, in, out any) error {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.conn.Invoke(ctx, method, in, out)
}

// GetLogger implements [hostlog.Host]. The remote logger is resolved once
// so lookup failures surface here rather than on the first record.
func (c *Client) GetLogger(name string) (hostlog.HostLogger, error) {
	if err := c.invoke(methodGetLogger, wrapperspb.String(name), new(emptypb.Empty)); err != nil {
		return nil, err
	}
	return &remoteLogger{client: c, name: name}, nil
}

// NewRecord implements [hostlog.Host]. The record is built locally and
// sent with [hostlog.HostLogger.Handle].
func (c *Client) NewRecord(spec hostlog.RecordSpec) (hostlog.HostRecord, error) {
	return &spec, nil
}

// ReportError implements [hostlog.Host]. Delivery is best effort.
func (c *Client) ReportError(err error) {
	if err == nil {
		return
	}
	_ = c.invoke(methodReportError, wrapperspb.String(err.Error()), new(emptypb.Empty))
}

type remoteLogger struct {
	client *Client
	name   string
}

func (l *remoteLogger) IsEnabledFor(level int) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := l.client.invoke(methodIsEnabledFor, levelQuery(l.name, level), out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (l *remoteLogger) Handle(record hostlog.HostRecord) error {
	spec, ok := record.(*hostlog.RecordSpec)
	if !ok || spec == nil {
		return ErrForeignRecord
	}
	if spec.Name != l.name {
		named := *spec
		named.Name = l.name
		spec = &named
	}
	return l.client.invoke(methodHandle, encodeRecord(spec), new(emptypb.Empty))
}

var (
	_ hostlog.Host       = (*Client)(nil)
	_ hostlog.HostLogger = (*remoteLogger)(nil)
)
