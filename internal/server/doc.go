// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the operator HTTP server of the sync daemon: startup,
// shutdown on context cancellation and draining of in-flight requests.
package server
