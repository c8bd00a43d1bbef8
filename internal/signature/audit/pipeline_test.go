package audit

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Write(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestPipelineDeliversEvents(t *testing.T) {
	sink := &captureSink{}
	p := NewPipeline(sink, slog.New(slog.DiscardHandler), 16)
	p.Start(context.Background())

	now := time.Now()
	for i := 0; i < 5; i++ {
		p.Record(context.Background(), NewEvent(EventCodeChecked, "a@b.fr", "contrat-moe", now))
	}
	p.Stop()

	assert.Equal(t, 5, sink.len())
}

func TestPipelineStopFlushesBuffer(t *testing.T) {
	sink := &captureSink{}
	p := NewPipeline(sink, slog.New(slog.DiscardHandler), 16)
	p.Start(context.Background())

	p.Record(context.Background(), NewEvent(EventCodeIssued, "a@b.fr", "contrat-moe", time.Now()))
	p.Stop()

	require.Equal(t, 1, sink.len())
}

func TestPipelineDropsWhenFull(t *testing.T) {
	sink := &captureSink{}
	// Never started: nothing drains, the buffer fills up.
	p := NewPipeline(sink, slog.New(slog.DiscardHandler), 2)

	for i := 0; i < 10; i++ {
		p.Record(context.Background(), NewEvent(EventCodeIssued, "a@b.fr", "contrat-moe", time.Now()))
	}

	assert.Len(t, p.inbox, 2, "overflow events are dropped, Record never blocks")
}

func TestDeviceLabel(t *testing.T) {
	t.Run("empty agent", func(t *testing.T) {
		assert.Equal(t, "Unknown Device", DeviceLabel(""))
	})

	t.Run("desktop chrome", func(t *testing.T) {
		ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		label := DeviceLabel(ua)
		assert.Contains(t, label, "Chrome")
		assert.Contains(t, label, " on ")
	})

	t.Run("unknown agent still yields a label", func(t *testing.T) {
		label := DeviceLabel("Strange/1.0")
		assert.NotEmpty(t, label)
		assert.Contains(t, label, " on ")
	})
}

func TestNewEvent(t *testing.T) {
	at := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	e := NewEvent(EventTicketMinted, "a@b.fr", "contrat-moe", at)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventTicketMinted, e.Type)
	assert.Equal(t, at, e.Timestamp)
}
