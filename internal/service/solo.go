package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/repository"
)

// SoloService runs the single-device variant: one real user, positional
// players, spy seat drawn at creation. Records carry a TTL so abandoned
// games clean themselves up.
type SoloService struct {
	games      repository.SoloGameRepository
	players    repository.SoloActivePlayerRepository
	users      repository.UserRepository
	words      *WordService
	minPlayers int
	maxPlayers int
	ttl        time.Duration
}

func NewSoloService(
	games repository.SoloGameRepository,
	players repository.SoloActivePlayerRepository,
	users repository.UserRepository,
	words *WordService,
	minPlayers, maxPlayers int,
	ttl time.Duration,
) *SoloService {
	return &SoloService{
		games:      games,
		players:    players,
		users:      users,
		words:      words,
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		ttl:        ttl,
	}
}

func (s *SoloService) Host(ctx context.Context, userID uuid.UUID, playerAmount int) (*model.SoloGame, error) {
	if playerAmount < s.minPlayers || playerAmount > s.maxPlayers {
		return nil, apperrors.InvalidPlayerAmount(
			fmt.Sprintf("player amount must be between %d and %d", s.minPlayers, s.maxPlayers))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	active, err := s.players.Exists(ctx, userID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if active {
		return nil, apperrors.AlreadyInGame()
	}

	word, err := s.words.Draw(ctx, userID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	game := model.NewSoloGame(userID, playerAmount, word, rand.IntN(playerAmount))

	if err := s.games.Save(ctx, game, s.ttl); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if err := s.players.Create(ctx, userID, game.GameID, s.ttl); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	log.Info().
		Str("gameId", game.GameID.String()).
		Str("userId", userID.String()).
		Int("playerAmount", playerAmount).
		Msg("solo game hosted")

	return game, nil
}

func (s *SoloService) Get(ctx context.Context, gameID uuid.UUID) (*model.SoloGame, error) {
	game, err := s.games.Find(ctx, gameID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if game == nil {
		return nil, apperrors.NotFound("Game")
	}
	return game, nil
}

func (s *SoloService) GetByUser(ctx context.Context, userID uuid.UUID) (*model.SoloGame, error) {
	entry, err := s.players.Find(ctx, userID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("Game")
	}
	return s.Get(ctx, entry.GameID)
}

func (s *SoloService) List(ctx context.Context, limit, offset int) ([]*model.SoloGame, error) {
	games, err := s.games.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return games, nil
}

func (s *SoloService) Unhost(ctx context.Context, gameID uuid.UUID) error {
	game, err := s.games.Find(ctx, gameID)
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}
	if game == nil {
		return apperrors.NotFound("Game")
	}

	if err := s.players.Remove(ctx, game.UserID); err != nil {
		return apperrors.StoreUnavailable(err)
	}
	if err := s.games.Remove(ctx, gameID); err != nil {
		return apperrors.StoreUnavailable(err)
	}

	log.Info().Str("gameId", gameID.String()).Msg("solo game unhosted")
	return nil
}

// Rehost recreates the game with the same player amount but a fresh id,
// secret word and spy seat.
func (s *SoloService) Rehost(ctx context.Context, gameID uuid.UUID) (*model.SoloGame, error) {
	old, err := s.games.Find(ctx, gameID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if old == nil {
		return nil, apperrors.NotFound("Game")
	}

	if err := s.Unhost(ctx, gameID); err != nil {
		return nil, err
	}

	word, err := s.words.Draw(ctx, old.UserID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	game := model.NewSoloGame(old.UserID, old.PlayerAmount, word, rand.IntN(old.PlayerAmount))

	if err := s.games.Save(ctx, game, s.ttl); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if err := s.players.Create(ctx, old.UserID, game.GameID, s.ttl); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	log.Info().
		Str("oldGameId", gameID.String()).
		Str("gameId", game.GameID.String()).
		Msg("solo game rehosted")

	return game, nil
}
