package worker

import (
	"context"
	"course_academy_backend/internal/util"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu       sync.Mutex
	items    []string
	failures map[string]int
	locked   map[string]bool
	done     []string
}

func newFakeQueue(items ...string) *fakeQueue {
	return &fakeQueue{items: items, failures: map[string]int{}, locked: map[string]bool{}}
}

func (q *fakeQueue) Enqueue(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, id)
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		time.Sleep(time.Millisecond)
		q.mu.Lock()
		return "", nil
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, nil
}

func (q *fakeQueue) Retry(ctx context.Context, id string, max int) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failures[id]++
	if q.failures[id] >= max {
		delete(q.failures, id)
		return false, nil
	}
	q.items = append(q.items, id)
	return true, nil
}

func (q *fakeQueue) Done(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.done = append(q.done, id)
	return nil
}

func (q *fakeQueue) Lock(ctx context.Context, id string, ttl time.Duration) (func(), bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.locked[id] {
		return func() {}, false, nil
	}
	q.locked[id] = true
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.locked, id)
	}, true, nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error
}

func (g *fakeGenerator) Generate(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.calls == nil {
		g.calls = map[string]int{}
	}
	g.calls[id]++
	return g.errs[id]
}

func TestProcessSuccessMarksDone(t *testing.T) {
	q := newFakeQueue()
	gen := &fakeGenerator{}
	w := NewCertificateWorker(q, gen, time.Minute)

	w.Process(context.Background(), "cert-1")

	assert.Equal(t, 1, gen.calls["cert-1"])
	assert.Equal(t, []string{"cert-1"}, q.done)
	assert.Empty(t, q.items)
	assert.Empty(t, q.locked, "lock must be released")
}

func TestProcessFailureRequeuesUntilLimit(t *testing.T) {
	q := newFakeQueue()
	gen := &fakeGenerator{errs: map[string]error{"cert-1": errors.New("storage down")}}
	w := NewCertificateWorker(q, gen, time.Minute)

	ctx := context.Background()
	w.Process(ctx, "cert-1")
	require.Equal(t, []string{"cert-1"}, q.items)

	for i := 1; i < maxFailures; i++ {
		id, err := q.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		w.Process(ctx, id)
	}

	assert.Equal(t, maxFailures, gen.calls["cert-1"])
	assert.Empty(t, q.items, "job is dropped after the last failure")
	assert.Empty(t, q.done)
}

func TestProcessDropsMissingCertificate(t *testing.T) {
	q := newFakeQueue()
	gen := &fakeGenerator{errs: map[string]error{"gone": util.ErrCertificateNotFound}}
	w := NewCertificateWorker(q, gen, time.Minute)

	w.Process(context.Background(), "gone")

	assert.Empty(t, q.items)
	assert.Empty(t, q.failures)
}

func TestProcessSkipsLockedCertificate(t *testing.T) {
	q := newFakeQueue()
	q.locked["cert-1"] = true
	gen := &fakeGenerator{}
	w := NewCertificateWorker(q, gen, time.Minute)

	w.Process(context.Background(), "cert-1")

	assert.Zero(t, gen.calls["cert-1"])
	assert.Empty(t, q.items)
}

func TestStartDrainsQueueAndStops(t *testing.T) {
	q := newFakeQueue("a", "b")
	gen := &fakeGenerator{}
	w := NewCertificateWorker(q, gen, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.done) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
