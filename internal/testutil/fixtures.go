package testutil

import (
	"io"
	"log/slog"

	"github.com/roach88/socialgraph/internal/model"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleSnapshot returns a small valid snapshot:
//
//	accounts: 1 alice, 2 bob (3 was removed)
//	posts:    1 original by alice "hello", endorsed by bob (2),
//	          3 comment by bob on 1, 4 comment by alice on 3
//
// Post 5 and account 3 were allocated and later deleted, so the sequences
// run ahead of the highest live ids.
func SampleSnapshot() model.Snapshot {
	return model.Snapshot{
		FormatVersion: model.FormatVersion,
		AccountSeq:    3,
		PostSeq:       5,
		Accounts: []model.Account{
			{ID: 1, Handle: "alice", Description: "first"},
			{ID: 2, Handle: "bob"},
		},
		Posts: []model.PostRecord{
			{ID: 1, Kind: model.KindOriginal, AuthorID: 1, Message: "hello", EndorsementCount: 1},
			{ID: 2, Kind: model.KindEndorsement, AuthorID: 2, TargetID: 1},
			{ID: 3, Kind: model.KindComment, AuthorID: 2, Message: "hi alice", ParentID: 1},
			{ID: 4, Kind: model.KindComment, AuthorID: 1, Message: "hi bob", ParentID: 3},
		},
	}
}
