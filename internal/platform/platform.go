package platform

import (
	"log/slog"
	"sync"

	"github.com/roach88/socialgraph/internal/store"
)

// Platform is the social-graph repository.
//
// Thread-safety: every exported method holds p.mu for its whole duration.
type Platform struct {
	mu         sync.Mutex
	st         *state
	accountSeq *Sequence
	postSeq    *Sequence
	codec      Codec
	logger     *slog.Logger
}

// Option configures a Platform.
type Option func(*Platform)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Platform) {
		p.logger = logger
	}
}

// WithCodec sets the snapshot codec used by SavePlatform and LoadPlatform.
// Defaults to store.SQLiteCodec.
func WithCodec(codec Codec) Option {
	return func(p *Platform) {
		p.codec = codec
	}
}

// New creates an empty platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		accountSeq: NewSequence(),
		postSeq:    NewSequence(),
		codec:      &store.SQLiteCodec{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "platform")
	p.st = newState(p.accountSeq, p.postSeq)
	return p
}

// ErasePlatform removes every account and post.
// Id sequences keep their position, so ids are never reused.
func (p *Platform) ErasePlatform() {
	p.mu.Lock()
	defer p.mu.Unlock()

	accounts, posts := len(p.st.accounts.byID), len(p.st.posts.byID)
	p.st = newState(p.accountSeq, p.postSeq)
	p.logger.Debug("platform erased", "accounts", accounts, "posts", posts)
}
