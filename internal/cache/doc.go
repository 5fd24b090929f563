// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package cache is the persistent, cross-process TTL cache shared by both
// registry clients.
//
// Registry lookups are expensive network round-trips that should survive
// process restarts, so entries live in a single SQLite file rather than
// an in-process map.
//
// # Thread Safety
//
// Cache is safe for concurrent use. SQLite's own WAL-mode locking
// serializes writers; readers never block on a writer.
package cache
