// Copyright 2026 The ledger-iota-go Authors
// This file is part of the ledger-iota-go library.
//
// The ledger-iota-go library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ledger-iota-go library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ledger-iota-go library. If not, see <http://www.gnu.org/licenses/>.

// Package xlog wraps a zap.SugaredLogger behind the small leveled-logger
// surface the rest of this module calls against, so call sites read like
// go-ethereum's log.Debug("msg", "key", val) without depending on
// go-ethereum's own (internal, non-importable) log package.
package xlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *zap.SugaredLogger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	current = l.Sugar()
}

// L returns the package-level logger. Safe for concurrent use.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetLogger replaces the package-level logger, e.g. with a development or
// no-op logger in tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l.Sugar()
}

// Nop installs a logger that discards everything, useful for quiet test runs.
func Nop() {
	SetLogger(zap.NewNop())
}
