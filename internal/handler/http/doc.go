// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the operator HTTP API of the sync daemon.
//
// Domain processes record local mutations through it, trigger and schedule
// sync cycles, inspect the last cycle and settle escalated conflicts.
// Request tracing, access logging and body integrity checks are handled here
// before requests reach the service layer.
package http
