package main

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mitosis-arcade/internal/scores"
)

// Highscores couples the in-memory board with its persistent store
type Highscores struct {
	board  *scores.Board
	store  Store
	signer *scores.Signer
	log    *zap.Logger

	saveMu sync.Mutex // orders writes so the newest snapshot lands last
}

// NewHighscores loads the stored list. An unreadable store starts the board
// empty; the error is logged, not returned.
func NewHighscores(store Store, signer *scores.Signer, log *zap.Logger) *Highscores {
	if log == nil {
		log = zap.NewNop()
	}
	seed, err := store.Load()
	if err != nil {
		log.Warn("high score store unreadable, starting empty", zap.Error(err))
		seed = nil
	}
	h := &Highscores{
		board:  scores.NewBoard(scores.MaxEntries, seed),
		store:  store,
		signer: signer,
		log:    log,
	}
	log.Info("high scores loaded", zap.Int("count", h.board.Len()))
	return h
}

// Top returns the current list, best first
func (h *Highscores) Top() []scores.Record {
	return h.board.List()
}

// Authorize checks a submission token when signing is enabled
func (h *Highscores) Authorize(token string, r scores.Record) error {
	if !h.signer.Enabled() {
		return nil
	}
	if token == "" {
		return fmt.Errorf("%w: missing token", scores.ErrUnauthorized)
	}
	return h.signer.Verify(token, r)
}

// Submit validates r, ranks it and persists the full list. The board keeps
// the record even when persisting fails.
func (h *Highscores) Submit(r scores.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	h.saveMu.Lock()
	defer h.saveMu.Unlock()

	list := h.board.Insert(r)
	if err := h.store.Save(list); err != nil {
		h.log.Error("persist high scores", zap.Error(err), zap.Int("score", r.Score))
		return fmt.Errorf("persist high scores: %w", err)
	}
	h.log.Info("score recorded",
		zap.Int("score", r.Score),
		zap.Float64("time", r.Time),
		zap.Int("entries", len(list)),
	)
	return nil
}
