// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build tools

// Package main pins the ginkgo CLI, used to run the integration suites
// (`go run github.com/onsi/ginkgo/v2/ginkgo -tags integration ./...`).
package main

import (
	_ "github.com/onsi/ginkgo/v2/ginkgo"
)
