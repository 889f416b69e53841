package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"mitosis-arcade/game"
	"mitosis-arcade/internal/scores"
)

const submitTimeout = 5 * time.Second

// submitter reports finished sessions in the background. A failed
// submission is logged and otherwise ignored.
type submitter struct {
	client *scores.Client
	log    *zap.Logger
	wg     sync.WaitGroup
}

func newSubmitter(client *scores.Client, log *zap.Logger) *submitter {
	return &submitter{client: client, log: log}
}

// Submit sends r without blocking the caller
func (s *submitter) Submit(r game.Result) {
	rec := scores.Record{Score: r.Score, Time: r.Seconds()}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		if _, err := s.client.Submit(ctx, rec); err != nil {
			s.log.Warn("score submission failed",
				zap.String("session", r.SessionID),
				zap.Int("score", rec.Score),
				zap.Error(err),
			)
			return
		}
		s.log.Info("score submitted", zap.String("session", r.SessionID), zap.Int("score", rec.Score))
	}()
}

// Wait gives in-flight submissions up to d to finish
func (s *submitter) Wait(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
