package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/chitfund/internal/metrics"
	"github.com/mmynk/chitfund/internal/models"
)

// Saver writes a snapshot of the group to durable storage.
type Saver interface {
	Save(ctx context.Context, data *models.GroupData) error
}

// saveTimeout bounds a single snapshot write.
const saveTimeout = 10 * time.Second

// persister writes snapshots in the background. Only the latest pending
// snapshot is kept; a slow store never blocks mutations.
type persister struct {
	saver   Saver
	pending chan *models.GroupData
	done    chan struct{}
}

func newPersister(saver Saver) *persister {
	p := &persister{
		saver:   saver,
		pending: make(chan *models.GroupData, 1),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue replaces any unsaved snapshot with snap. Callers serialize enqueue
// calls under the Book lock.
func (p *persister) enqueue(snap *models.GroupData) {
	select {
	case <-p.pending:
	default:
	}
	p.pending <- snap
}

func (p *persister) run() {
	defer close(p.done)
	for snap := range p.pending {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := p.saver.Save(ctx, snap)
		cancel()
		if err != nil {
			slog.Error("Failed to save group snapshot", "error", err)
			metrics.SnapshotsSaved.WithLabelValues("error").Inc()
			continue
		}
		metrics.SnapshotsSaved.WithLabelValues("ok").Inc()
	}
}

// close flushes the pending snapshot and stops the writer.
func (p *persister) close() {
	close(p.pending)
	<-p.done
}
