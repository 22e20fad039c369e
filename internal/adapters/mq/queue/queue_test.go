package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/tixroi/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if err := q.Enqueue(ctx, model.ScoreJob{RunID: "run", EventID: 1}); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	job := <-q.Dequeue(ctx)
	if job.EventID != 1 || job.RunID != "run" {
		t.Errorf("unexpected job %+v", job)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for id := 1; id <= 2; id++ {
		if err := q.Enqueue(ctx, model.ScoreJob{EventID: id}); err != nil {
			t.Fatalf("expected enqueue %d to succeed, got %v", id, err)
		}
	}

	err := q.Enqueue(ctx, model.ScoreJob{EventID: 3})
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if c := q.Capacity(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := q.Enqueue(ctx, model.ScoreJob{EventID: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	producers := 10
	perProducer := 100

	var consumed sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]int)
	for i := 0; i < 4; i++ {
		consumed.Add(1)
		go func() {
			defer consumed.Done()
			for job := range q.Dequeue(ctx) {
				mu.Lock()
				seen[job.EventID]++
				mu.Unlock()
			}
		}()
	}

	var produced sync.WaitGroup
	for p := 0; p < producers; p++ {
		produced.Add(1)
		go func(p int) {
			defer produced.Done()
			for j := 0; j < perProducer; j++ {
				job := model.ScoreJob{EventID: p*perProducer + j}
				for q.Enqueue(ctx, job) != nil {
					time.Sleep(time.Millisecond)
				}
			}
		}(p)
	}

	produced.Wait()
	_ = q.Close()
	consumed.Wait()

	if len(seen) != producers*perProducer {
		t.Errorf("expected %d distinct jobs, got %d", producers*perProducer, len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("job %d delivered %d times", id, n)
		}
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for id := 1; id <= 2; id++ {
		if err := q.Enqueue(ctx, model.ScoreJob{EventID: id}); err != nil {
			t.Fatalf("expected enqueue to succeed, got %v", err)
		}
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if err := q.Enqueue(ctx, model.ScoreJob{EventID: 3}); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("expected ErrQueueClosed, got %v", err)
	}

	// pending jobs drain before the channel closes
	var got []int
	timeout := time.After(time.Second)
	ch := q.Dequeue(ctx)
	for {
		select {
		case job, ok := <-ch:
			if !ok {
				if len(got) != 2 {
					t.Errorf("expected 2 drained jobs, got %v", got)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			got = append(got, job.EventID)
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}
