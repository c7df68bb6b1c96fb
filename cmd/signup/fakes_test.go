// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import "sync"

// fakeMigrator records migrator calls.
type fakeMigrator struct {
	mu      sync.Mutex
	pending []uint
	upErr   error
	calls   []string
	events  *[]string
}

func (f *fakeMigrator) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.events != nil {
		*f.events = append(*f.events, "migrate."+call)
	}
}

func (f *fakeMigrator) Up() error {
	f.record("up")
	return f.upErr
}

func (f *fakeMigrator) Down() error {
	f.record("down")
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return 0, false, nil
}

func (f *fakeMigrator) Pending() ([]uint, error) {
	f.record("pending")
	return f.pending, nil
}

func (f *fakeMigrator) Close() error {
	f.record("close")
	return nil
}

func (f *fakeMigrator) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var _ Migrator = (*fakeMigrator)(nil)
