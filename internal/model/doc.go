// Package model provides the domain types shared by the socialgraph packages.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import model; model imports nothing internal.
//
// Key design constraints:
//   - Accounts and posts live in id-indexed arenas owned by the platform
//   - Cross references (AuthorID, ParentID, TargetID) are logical keys, never pointers
//   - Post is one tagged variant; behaviour dispatches on Kind
//   - Ids come from monotonic sequences and are never reused
//   - Handles and messages are NFC normalised before any length check
package model
