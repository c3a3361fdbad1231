package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
)

// FlushFunc persists one clause's pending edit.
type FlushFunc func(ctx context.Context, clauseID uuid.UUID, patch ClausePatch) error

// Autosaver collapses rapid edits to the same clause into a single persisted
// write after a quiet period. A superseding edit cancels the pending flush
// and restarts the delay with the newer patch.
type Autosaver struct {
	mu      sync.Mutex
	log     *logger.Logger
	delay   time.Duration
	flush   FlushFunc
	pending map[uuid.UUID]*pendingEdit
	gen     uint64
}

type pendingEdit struct {
	timer *time.Timer
	patch ClausePatch
	gen   uint64
}

func NewAutosaver(baseLog *logger.Logger, delay time.Duration, flush FlushFunc) *Autosaver {
	return &Autosaver{
		log:     baseLog.With("service", "Autosaver"),
		delay:   delay,
		flush:   flush,
		pending: make(map[uuid.UUID]*pendingEdit),
	}
}

// Schedule queues an edit for delayed persistence.
func (a *Autosaver) Schedule(clauseID uuid.UUID, patch ClausePatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, exists := a.pending[clauseID]; exists {
		p.timer.Stop()
	}
	// The generation makes cancellation exact: a superseded timer that
	// already fired and is waiting on the lock sees a newer generation and
	// gives up instead of flushing the replacement patch early.
	a.gen++
	p := &pendingEdit{patch: patch, gen: a.gen}
	gen := a.gen
	p.timer = time.AfterFunc(a.delay, func() {
		a.fire(clauseID, gen)
	})
	a.pending[clauseID] = p
}

// Flush persists a pending edit immediately, if one exists.
func (a *Autosaver) Flush(clauseID uuid.UUID) {
	a.mu.Lock()
	p, exists := a.pending[clauseID]
	if exists {
		p.timer.Stop()
	}
	a.mu.Unlock()
	if exists {
		a.fire(clauseID, p.gen)
	}
}

// Cancel drops a pending edit without persisting it.
func (a *Autosaver) Cancel(clauseID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, exists := a.pending[clauseID]; exists {
		p.timer.Stop()
		delete(a.pending, clauseID)
	}
}

// Stop cancels every pending edit.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, id)
	}
}

func (a *Autosaver) fire(clauseID uuid.UUID, gen uint64) {
	a.mu.Lock()
	p, exists := a.pending[clauseID]
	if exists && p.gen != gen {
		// A newer edit superseded this timer while it waited on the lock.
		exists = false
		p = nil
	}
	if exists {
		delete(a.pending, clauseID)
	}
	a.mu.Unlock()
	if !exists {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.flush(ctx, clauseID, p.patch); err != nil {
		a.log.Error("Autosave flush failed", "clause_id", clauseID, "error", err)
	}
}
