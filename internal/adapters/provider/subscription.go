package provider

import (
	"context"
	"sync"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// subscription streams the events of one creation transaction from a
// background watcher. Unsubscribe stops the watcher, never the transaction.
type subscription struct {
	ch     chan models.DeploymentEvent
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func newSubscription(parent context.Context) *subscription {
	ctx, cancel := context.WithCancel(parent)
	return &subscription{
		ch:     make(chan models.DeploymentEvent, 2),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *subscription) Events() <-chan models.DeploymentEvent {
	return s.ch
}

func (s *subscription) Unsubscribe() {
	s.cancel()
}

// send delivers an event unless the subscriber went away
func (s *subscription) send(event models.DeploymentEvent) bool {
	select {
	case s.ch <- event:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// run starts fn in the background and closes the channel when it returns
func (s *subscription) run(fn func(ctx context.Context)) {
	go func() {
		defer s.once.Do(func() {
			close(s.ch)
			s.cancel()
		})
		fn(s.ctx)
	}()
}

var _ usecase.Subscription = (*subscription)(nil)
