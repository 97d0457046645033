// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

// Package client implements the client application runtime.
//
// It wires the local SQLite store, the remote adapter, the change tracker and
// the background sync worker into a single process lifecycle. Without a
// configured endpoint the process runs in offline-only mode: all data stays
// local and no network call is ever attempted.
package client
