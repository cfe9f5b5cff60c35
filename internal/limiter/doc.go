// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package limiter holds the process-wide attempt counters.
//
// A [Counter] is a set of fixed-window counters: the first increment of a key
// opens a window and the key disappears when the window ends. Two backends
// exist: [MemoryCounter] for a single node and [RedisCounter] (INCR + EXPIRE)
// for deployments with several replicas.
//
// On top of a Counter sit the two policies the server needs:
//   - [LoginGuard] locks an email after too many consecutive failed logins;
//   - [RateLimiter] caps requests per client per minute.
//
// Keys derived from emails are HMAC digests, so no backend ever stores an
// address in clear.
package limiter
