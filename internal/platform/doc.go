// Package platform implements the socialgraph repository: accounts, posts,
// endorsements and comments, cascading deletion, aggregate queries and
// reply-tree rendering.
//
// ARCHITECTURE:
//
// Arena + Index:
// Accounts and posts live in id-indexed maps owned by one state value.
// Cross references (author, parent, target) are logical ids, so deleting a
// post can never leave a dangling pointer behind.
//
// Check-Then-Act:
// Every mutating operation computes its full validation outcome, and for
// deletions its full cascade set, before it touches any map. A failed
// operation leaves the platform unchanged.
//
// Single Lock:
// Platform serialises every public method behind one mutex. Invariants span
// accounts and posts, so locking is coarse-grained rather than per entity.
//
// Snapshots:
// SavePlatform and LoadPlatform move the whole state through a Codec as one
// model.Snapshot. A load builds and validates a new state before swapping it
// in; on any error the current state is untouched.
package platform
