package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/repository"
)

const cleanupPageSize = 10

// GameReaper is the slice of the game service the sweep needs.
type GameReaper interface {
	List(ctx context.Context, limit, offset int) ([]*model.Game, error)
	Unhost(ctx context.Context, gameID uuid.UUID) error
}

// CleanupJob periodically reconciles the consistency gap between game
// records and active-player entries: a game whose host holds no entry, or
// which has no members at all, is torn down.
type CleanupJob struct {
	games    GameReaper
	players  repository.ActivePlayerRepository
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewCleanupJob(games GameReaper, players repository.ActivePlayerRepository, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		games:    games,
		players:  players,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run()
	}()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

// Stop waits for an in-flight sweep to finish, so nothing is torn down
// concurrently with the rest of shutdown.
func (j *CleanupJob) Stop() {
	close(j.done)
	j.wg.Wait()
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reaped := 0
	offset := 0

	for {
		games, err := j.games.List(ctx, cleanupPageSize, offset)
		if err != nil {
			log.Error().Err(err).Msg("cleanup: failed to list games")
			return
		}
		if len(games) == 0 {
			break
		}

		// Reaped games leave the listing, so the offset only advances
		// past the games that stayed.
		kept := 0
		for _, game := range games {
			stale, err := j.isStale(ctx, game)
			if err != nil {
				log.Error().Err(err).Str("gameId", game.GameID.String()).Msg("cleanup: stale check failed")
				kept++
				continue
			}
			if !stale {
				kept++
				continue
			}

			if err := j.games.Unhost(ctx, game.GameID); err != nil {
				log.Error().Err(err).Str("gameId", game.GameID.String()).Msg("cleanup: unhost failed")
				kept++
				continue
			}
			reaped++
		}

		offset += kept
	}

	if reaped > 0 {
		log.Info().Int("count", reaped).Msg("cleaned up stale games")
	}
}

func (j *CleanupJob) isStale(ctx context.Context, game *model.Game) (bool, error) {
	if game.PlayerCount() == 0 {
		return true, nil
	}
	hostActive, err := j.players.Exists(ctx, game.HostID)
	if err != nil {
		return false, err
	}
	return !hostActive, nil
}
