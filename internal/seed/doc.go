// Package seed loads accounts and posts from CUE files into a platform.
//
// A seed file lists accounts and then posts in creation order:
//
//	accounts: [
//		{handle: "alice", description: "writes a lot"},
//		{handle: "bob"},
//	]
//	posts: [
//		{ref: "hello", author: "alice", message: "hello world"},
//		{ref: "hi", author: "bob", comment: "hello", message: "hi alice"},
//		{author: "bob", endorse: "hello"},
//	]
//
// A post with only a message is an original post, a post with comment and
// message replies to its target, and a post with endorse endorses its
// target. Targets name a ref given to an earlier post in the same file, or
// the numeric id of a post that already exists on the platform.
//
// The file is checked against an embedded CUE schema before anything is
// applied, and Apply rolls the platform back to its prior snapshot if any
// operation fails.
package seed
