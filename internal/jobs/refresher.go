package jobs

import (
	"context"
	"log"
	"time"

	"go2/internal/keywords"
	"go2/internal/metrics"
)

// Loader is the part of the keyword browser the refresher drives.
type Loader interface {
	Load(ctx context.Context) keywords.Result
}

// KeywordRefresher loads the keyword browser's working list at startup and,
// when an interval is set, reloads it in the background.
type KeywordRefresher struct {
	loader   Loader
	interval time.Duration
}

// NewKeywordRefresher creates a new refresher. An interval of zero loads once.
func NewKeywordRefresher(loader Loader, interval time.Duration) *KeywordRefresher {
	return &KeywordRefresher{
		loader:   loader,
		interval: interval,
	}
}

// Start performs the initial load and then reloads on every tick until ctx is done.
func (r *KeywordRefresher) Start(ctx context.Context) {
	r.refresh(ctx)

	if r.interval <= 0 {
		return
	}

	log.Printf("Keyword refresher started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Keyword refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh performs a single load and records its outcome.
func (r *KeywordRefresher) refresh(ctx context.Context) {
	res := r.loader.Load(ctx)
	metrics.RecordKeywordLoad(res.OK())
	if res.OK() {
		log.Printf("Keyword browser loaded %d keywords", len(res.Keywords))
	}
}
