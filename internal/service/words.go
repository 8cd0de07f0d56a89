package service

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/repository"
)

//go:embed words.txt
var wordData string

// DefaultWordPool is the built-in secret word list.
var DefaultWordPool = parseWordPool(wordData)

func parseWordPool(data string) []string {
	var pool []string
	for _, line := range strings.Split(data, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			pool = append(pool, word)
		}
	}
	return pool
}

// WordService draws secret words guaranteed unique across a host's last N
// games. The draw is a read-modify-write on the host's queue key; callers
// must not run two draws for one host concurrently (host and rehost are
// the only call sites, both already guarded by the active-player check).
type WordService struct {
	queues      repository.WordQueueRepository
	pool        []string
	uniqueCount int
}

func NewWordService(queues repository.WordQueueRepository, pool []string, uniqueCount int) *WordService {
	return &WordService{
		queues:      queues,
		pool:        pool,
		uniqueCount: uniqueCount,
	}
}

// Draw picks a word uniformly from the pool minus the host's recent draws,
// falling back to the full pool when it is exhausted, and persists the
// updated queue.
func (s *WordService) Draw(ctx context.Context, hostID uuid.UUID) (string, error) {
	if len(s.pool) == 0 {
		return "", fmt.Errorf("word pool is empty")
	}

	queue, err := s.queues.Find(ctx, hostID)
	if err != nil {
		return "", fmt.Errorf("load word queue: %w", err)
	}
	if queue == nil {
		queue = model.NewWordQueue(hostID, s.uniqueCount)
	}

	recent := make(map[string]bool, len(queue.Words))
	for _, word := range queue.Words {
		recent[word] = true
	}

	available := make([]string, 0, len(s.pool))
	for _, word := range s.pool {
		if !recent[word] {
			available = append(available, word)
		}
	}
	if len(available) == 0 {
		available = s.pool
	}

	word := available[rand.IntN(len(available))]
	queue.Push(word)

	if err := s.queues.Save(ctx, queue); err != nil {
		return "", fmt.Errorf("save word queue: %w", err)
	}
	return word, nil
}
