package bdata

import (
	"context"
	"sync"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// ObservedDatabase pushes the full ordered history to subscribers after
// every successful Save or Clear.
type ObservedDatabase struct {
	BinDatabase

	mu   sync.Mutex
	next int
	subs map[int]chan []mod.BinRecord
}

func Observe(db BinDatabase) *ObservedDatabase {
	return &ObservedDatabase{BinDatabase: db, subs: make(map[int]chan []mod.BinRecord)}
}

func (o *ObservedDatabase) Save(ctx context.Context, record mod.BinRecord) error {
	if err := o.BinDatabase.Save(ctx, record); err != nil {
		return err
	}
	o.publish(ctx)
	return nil
}

func (o *ObservedDatabase) Clear(ctx context.Context) error {
	if err := o.BinDatabase.Clear(ctx); err != nil {
		return err
	}
	o.publish(ctx)
	return nil
}

// Subscribe delivers the current history immediately and then every change
// until ctx is done, when the channel is closed. A slow reader only sees the
// latest snapshot.
func (o *ObservedDatabase) Subscribe(ctx context.Context) (<-chan []mod.BinRecord, error) {
	ch := make(chan []mod.BinRecord, 1)

	o.mu.Lock()
	snapshot, err := o.BinDatabase.List(ctx)
	if err != nil {
		o.mu.Unlock()
		return nil, errors.Wrap(err, "initial history snapshot")
	}
	ch <- snapshot
	id := o.next
	o.next++
	o.subs[id] = ch
	o.mu.Unlock()

	go func() {
		<-ctx.Done()
		o.mu.Lock()
		delete(o.subs, id)
		close(ch)
		o.mu.Unlock()
	}()
	return ch, nil
}

func (o *ObservedDatabase) publish(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.subs) == 0 {
		return
	}
	records, err := o.BinDatabase.List(ctx)
	if err != nil {
		logger.Warnf("history change not published: %s", err)
		return
	}
	for _, ch := range o.subs {
		offer(ch, records)
	}
}

// offer replaces any undelivered snapshot with records.
func offer(ch chan []mod.BinRecord, records []mod.BinRecord) {
	select {
	case ch <- records:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- records:
	default:
	}
}
