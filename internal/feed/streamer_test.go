package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/npezzotti/go-molehunt/internal/testutil"
	"github.com/npezzotti/go-molehunt/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePoller serves canned messages above the requested watermark and
// records the watermarks it was asked for.
type fakePoller struct {
	mu       sync.Mutex
	messages []types.ChatMessage
	asked    []int
	err      error
}

func (f *fakePoller) Poll(sinceId int) ([]types.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.asked = append(f.asked, sinceId)
	if f.err != nil {
		return nil, f.err
	}

	var out []types.ChatMessage
	for _, m := range f.messages {
		if m.Id > sinceId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakePoller) askedWatermarks() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.asked...)
}

func TestStreamDeliversAndAdvances(t *testing.T) {
	poller := &fakePoller{
		messages: []types.ChatMessage{
			{Id: 1, Content: "one"},
			{Id: 2, Content: "two"},
		},
	}
	streamer := NewStreamer(testutil.TestLogger(t), poller, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var delivered []types.ChatMessage
	err := streamer.Stream(ctx, 0, func(batch []types.ChatMessage) error {
		delivered = append(delivered, batch...)
		if len(delivered) >= 2 {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled, "expected stream to end on cancellation")
	require.Len(t, delivered, 2, "expected both messages delivered exactly once")
	assert.Equal(t, "one", delivered[0].Content)
	assert.Equal(t, "two", delivered[1].Content)

	asked := poller.askedWatermarks()
	require.NotEmpty(t, asked)
	assert.Equal(t, 0, asked[0], "expected first poll at the initial watermark")
	if len(asked) > 1 {
		assert.Equal(t, 2, asked[1], "expected watermark advanced past the delivered batch")
	}
}

func TestStreamSuspendsWhenQuiet(t *testing.T) {
	poller := &fakePoller{}
	streamer := NewStreamer(testutil.TestLogger(t), poller, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := streamer.Stream(ctx, 0, func([]types.ChatMessage) error {
		t.Fatal("unexpected delivery from an empty feed")
		return nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// 50ms with a 20ms interval allows at most a handful of polls
	assert.LessOrEqual(t, len(poller.askedWatermarks()), 4, "expected the streamer to suspend between polls")
}

func TestStreamCancelledBeforeStart(t *testing.T) {
	poller := &fakePoller{}
	streamer := NewStreamer(testutil.TestLogger(t), poller, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- streamer.Stream(ctx, 0, func([]types.ChatMessage) error { return nil })
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("stream did not terminate promptly on cancellation")
	}
}

func TestStreamDeliverError(t *testing.T) {
	poller := &fakePoller{
		messages: []types.ChatMessage{{Id: 1, Content: "one"}},
	}
	streamer := NewStreamer(testutil.TestLogger(t), poller, 10*time.Millisecond)

	wantErr := errors.New("client gone")
	err := streamer.Stream(context.Background(), 0, func([]types.ChatMessage) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr, "expected the deliver error to be returned")
}

func TestStreamRetriesAfterPollError(t *testing.T) {
	poller := &fakePoller{err: errors.New("connection refused")}
	streamer := NewStreamer(testutil.TestLogger(t), poller, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := streamer.Stream(ctx, 0, func([]types.ChatMessage) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded, "expected poll errors to be retried, not fatal")
	assert.Greater(t, len(poller.askedWatermarks()), 1, "expected repeated polls despite errors")
}
