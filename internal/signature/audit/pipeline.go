package audit

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Sink persists one event.
type Sink interface {
	Write(ctx context.Context, e Event) error
}

// Pipeline decouples request handling from event persistence: Record never
// blocks, a background worker drains the buffer into the sink. A full buffer
// drops the event.
type Pipeline struct {
	sink   Sink
	inbox  chan Event
	logger *slog.Logger
	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewPipeline builds a pipeline with the given buffer size.
func NewPipeline(sink Sink, logger *slog.Logger, buffer int) *Pipeline {
	return &Pipeline{
		sink:   sink,
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Record enqueues an event, dropping it when the buffer is full.
func (p *Pipeline) Record(ctx context.Context, e Event) {
	select {
	case p.inbox <- e:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"type", e.Type, "document_id", e.DocumentID)
	}
}

// Start launches the drain worker. Call Stop to flush and shut down.
func (p *Pipeline) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.group, ctx = errgroup.WithContext(ctx)

	p.group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return nil
			case e := <-p.inbox:
				p.write(ctx, e)
			}
		}
	})
}

// Stop flushes buffered events and waits for the worker.
func (p *Pipeline) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	_ = p.group.Wait()
}

// drain empties whatever is left in the buffer on shutdown. Writes use a
// background context: the run context is already canceled.
func (p *Pipeline) drain() {
	for {
		select {
		case e := <-p.inbox:
			p.write(context.Background(), e)
		default:
			return
		}
	}
}

func (p *Pipeline) write(ctx context.Context, e Event) {
	if err := p.sink.Write(ctx, e); err != nil {
		p.logger.ErrorContext(ctx, "audit sink write failed",
			"type", e.Type, "error", err)
	}
}
