package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// WriteBehind is a ports.MemeCache that serves reads from the wrapped cache
// and hands writes to a fixed set of workers. Writes for the same meme id
// always land on the same worker, so they are applied in order.
type WriteBehind struct {
	cache   ports.MemeCache
	workers []chan domain.Meme
	log     zerolog.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewWriteBehind creates a WriteBehind with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. Call Start before Set.
func NewWriteBehind(cache ports.MemeCache, numWorkers int, log zerolog.Logger) *WriteBehind {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &WriteBehind{
		cache:   cache,
		workers: make([]chan domain.Meme, numWorkers),
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan domain.Meme, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop once Close has drained
// their queues.
func (w *WriteBehind) Start() {
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.runWorker(i, ch)
	}
}

func (w *WriteBehind) Get(ctx context.Context, id int64) (*domain.Meme, bool, error) {
	return w.cache.Get(ctx, id)
}

// Set enqueues meme for the worker responsible for its id. It blocks only
// while that worker's queue is full, and gives up when ctx is done.
func (w *WriteBehind) Set(ctx context.Context, meme *domain.Meme) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return nil
	}
	select {
	case w.workers[w.shardIndex(meme.ID)] <- *meme:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes and waits for queued writes to finish.
func (w *WriteBehind) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, ch := range w.workers {
		close(ch)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// shardIndex maps a meme id deterministically to a worker index.
func (w *WriteBehind) shardIndex(id int64) int {
	h := fnv.New32a()
	_, _ = h.Write(strconv.AppendInt(nil, id, 10))
	return int(h.Sum32() % uint32(len(w.workers)))
}

func (w *WriteBehind) runWorker(id int, ch <-chan domain.Meme) {
	defer w.wg.Done()
	for meme := range ch {
		if err := w.cache.Set(context.Background(), &meme); err != nil {
			w.log.Error().Err(err).
				Int64("meme_id", meme.ID).
				Int("worker_id", id).
				Msg("cache write failed")
		}
	}
}
