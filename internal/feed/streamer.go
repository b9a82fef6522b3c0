// Package feed layers live delivery on top of the non-blocking chat poll.
package feed

import (
	"context"
	"log"
	"time"

	"github.com/npezzotti/go-molehunt/internal/types"
)

const DefaultPollInterval = time.Second

// Poller is the read side of the chat feed. Implemented by game.ChatFeed.
type Poller interface {
	Poll(sinceId int) ([]types.ChatMessage, error)
}

// Streamer turns the poll contract into a long-lived subscription: query,
// deliver, advance the watermark, suspend while the feed is quiet. Each
// subscriber owns its watermark; the store remains the single source of
// ordering truth.
type Streamer struct {
	log      *log.Logger
	feed     Poller
	interval time.Duration
}

func NewStreamer(logger *log.Logger, feed Poller, interval time.Duration) *Streamer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Streamer{
		log:      logger,
		feed:     feed,
		interval: interval,
	}
}

// Stream delivers message batches until ctx is cancelled or deliver fails.
// Poll errors are logged and retried on the next tick rather than tearing
// down the subscription.
func (s *Streamer) Stream(ctx context.Context, sinceId int, deliver func([]types.ChatMessage) error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		messages, err := s.feed.Poll(sinceId)
		if err != nil {
			s.log.Printf("poll messages since %d: %v", sinceId, err)
		}

		if len(messages) > 0 {
			if err := deliver(messages); err != nil {
				return err
			}
			sinceId = messages[len(messages)-1].Id
			// re-poll right away in case more arrived while delivering
			timer.Reset(0)
			continue
		}

		timer.Reset(s.interval)
	}
}
