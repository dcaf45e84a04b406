package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
)

type recordingService struct {
	mu   sync.Mutex
	got  []domain.Activity
	done chan struct{}
	want int
}

func (s *recordingService) Process(_ context.Context, a domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, a)
	if len(s.got) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PreservesPerEmailOrder(t *testing.T) {
	kinds := []domain.ActivityKind{
		domain.ActivityRegister,
		domain.ActivityLoginFailed,
		domain.ActivityLogin,
		domain.ActivityProfileUpdate,
		domain.ActivityLogout,
	}
	svc := &recordingService{done: make(chan struct{}), want: len(kinds)}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, k := range kinds {
		d.Record(domain.Activity{Kind: k, Email: "a@x.com"})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for activities")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, k := range kinds {
		if svc.got[i].Kind != k {
			t.Fatalf("position %d: expected %s, got %s", i, k, svc.got[i].Kind)
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("a@x.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("a@x.com") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())

	// No workers started, so the buffer fills and further records drop.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.Activity{Kind: domain.ActivityLogin, Email: "a@x.com"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected buffer of %d, got %d", channelBuffer, got)
	}
}
