// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync daemon runtime.
//
// It wires the operator server, the initial and periodic synchronization and
// the live event stream into a single process lifecycle that ends on SIGINT,
// SIGTERM or SIGQUIT.
package client
