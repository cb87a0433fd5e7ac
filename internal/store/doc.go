// Package store persists platform snapshots as SQLite files.
//
// A snapshot file holds one complete state: every account, every post and
// the two id sequences, plus a meta row carrying the format version, a
// UUIDv7 snapshot id and the content digest of the snapshot.
//
// # Atomic Replacement
//
// SQLiteCodec.Save never writes into the target file. It builds a fresh
// database next to it, commits every row in one transaction, closes it and
// renames it over the target. A failed save removes the temporary file and
// leaves the previous snapshot in place.
//
// # Verified Loads
//
// SQLiteCodec.Load opens the file read-only, reads rows in ascending id
// order and recomputes the digest. A file whose rows do not hash to the
// recorded digest is rejected.
//
// # Database Configuration
//
//   - journal_mode=DELETE: a snapshot is a single self-contained file
//   - synchronous=FULL: the file is durable before it is renamed
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: authors, parents and targets must exist
package store
