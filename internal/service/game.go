package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/SpotTheSpy/backend/internal/blob"
	"github.com/SpotTheSpy/backend/internal/config"
	apperrors "github.com/SpotTheSpy/backend/internal/errors"
	"github.com/SpotTheSpy/backend/internal/jobs"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/qr"
	"github.com/SpotTheSpy/backend/internal/repository"
)

// GameService is the multi-device session state machine. Every operation
// re-reads the game from the store; mutations of an existing game run
// through an optimistic version check and are retried a bounded number of
// times on conflict, so two concurrent joins cannot both take the last
// slot.
//
// The game record, the active-player entries and the word queue live
// under separate keys written by separate calls. A crash between writes
// leaves a partially updated state; the cleanup job compensates by
// unhosting games whose host holds no active-player entry.
type GameService struct {
	games      repository.GameRepository
	players    repository.ActivePlayerRepository
	users      repository.UserRepository
	words      *WordService
	blobs      blob.Store
	qr         *qr.Generator
	queue      *jobs.Queue
	spyCount   model.SpyCount
	minPlayers int
	maxPlayers int
	assetTTL   time.Duration
}

type GameServiceParams struct {
	Games      repository.GameRepository
	Players    repository.ActivePlayerRepository
	Users      repository.UserRepository
	Words      *WordService
	Blobs      blob.Store
	QR         *qr.Generator
	Queue      *jobs.Queue
	SpyCount   model.SpyCount
	MinPlayers int
	MaxPlayers int
	AssetTTL   time.Duration
}

func NewGameService(p GameServiceParams) *GameService {
	return &GameService{
		games:      p.Games,
		players:    p.Players,
		users:      p.Users,
		words:      p.Words,
		blobs:      p.Blobs,
		qr:         p.QR,
		queue:      p.Queue,
		spyCount:   p.SpyCount,
		minPlayers: p.MinPlayers,
		maxPlayers: p.MaxPlayers,
		assetTTL:   p.AssetTTL,
	}
}

// Host creates a game with hostID as its sole member. Capacity is fixed
// here and only validated, never re-derived, at start time.
func (s *GameService) Host(ctx context.Context, hostID uuid.UUID, capacity int) (*model.Game, error) {
	if capacity < s.minPlayers || capacity > s.maxPlayers {
		return nil, apperrors.InvalidPlayerAmount(
			fmt.Sprintf("player amount must be between %d and %d", s.minPlayers, s.maxPlayers))
	}

	user, err := s.users.FindByID(ctx, hostID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	active, err := s.players.Exists(ctx, hostID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if active {
		return nil, apperrors.AlreadyInGame()
	}

	word, err := s.words.Draw(ctx, hostID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	game := model.NewGame(hostID, capacity, word, model.NewPlayer(user.ID, user.ExternalID, user.FirstName))

	if err := s.games.Save(ctx, game); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if err := s.players.Create(ctx, hostID, game.GameID); err != nil {
		// The game record exists without its index entry; the cleanup
		// job will reap it if this is never retried.
		return nil, apperrors.StoreUnavailable(err)
	}

	log.Info().
		Str("gameId", game.GameID.String()).
		Str("hostId", hostID.String()).
		Int("capacity", capacity).
		Msg("game hosted")

	return game, nil
}

// Join appends userID to the game. Fails when the game is absent or
// started, the user already occupies a game, or no slot is free.
func (s *GameService) Join(ctx context.Context, gameID, userID uuid.UUID) (*model.Game, error) {
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

	game, err := s.updateGame(ctx, gameID, func(game *model.Game) (*model.Game, error) {
		if game == nil {
			return nil, apperrors.NotFound("Game")
		}
		if game.HasStarted {
			return nil, apperrors.GameAlreadyStarted()
		}
		if game.HasPlayer(userID) {
			return nil, apperrors.AlreadyInGame()
		}
		if game.PlayerCount() >= game.Capacity {
			return nil, apperrors.GameIsFull()
		}
		game.AddPlayer(model.NewPlayer(user.ID, user.ExternalID, user.FirstName))
		return game, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.players.Create(ctx, userID, gameID); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	log.Info().
		Str("gameId", gameID.String()).
		Str("userId", userID.String()).
		Int("players", game.PlayerCount()).
		Msg("player joined")

	return game, nil
}

// Leave removes userID from a not-yet-started game.
func (s *GameService) Leave(ctx context.Context, gameID, userID uuid.UUID) (*model.Game, error) {
	game, err := s.updateGame(ctx, gameID, func(game *model.Game) (*model.Game, error) {
		if game == nil {
			return nil, apperrors.NotFound("Game")
		}
		if game.HasStarted {
			return nil, apperrors.GameAlreadyStarted()
		}
		if !game.RemovePlayer(userID) {
			return nil, apperrors.NotInGame()
		}
		return game, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.players.Remove(ctx, userID); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	log.Info().
		Str("gameId", gameID.String()).
		Str("userId", userID.String()).
		Msg("player left")

	return game, nil
}

// Start transitions the game to started and assigns hidden roles. Roles
// are computed exactly once; a second start fails and changes nothing.
func (s *GameService) Start(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	game, err := s.updateGame(ctx, gameID, func(game *model.Game) (*model.Game, error) {
		if game == nil {
			return nil, apperrors.NotFound("Game")
		}
		if game.HasStarted {
			return nil, apperrors.GameAlreadyStarted()
		}
		if game.PlayerCount() < s.minPlayers || game.PlayerCount() > s.maxPlayers {
			return nil, apperrors.InvalidPlayerAmount(
				fmt.Sprintf("game needs between %d and %d players to start", s.minPlayers, s.maxPlayers))
		}

		game.HasStarted = true
		r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		AssignRoles(game.Players, SpyIndices(r, s.spyCount, game.PlayerCount()))
		return game, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("gameId", gameID.String()).
		Int("players", game.PlayerCount()).
		Msg("game started")

	return game, nil
}

// Unhost tears the game down: every member's index entry, the game record
// and, deferred, the invitation asset.
func (s *GameService) Unhost(ctx context.Context, gameID uuid.UUID) error {
	game, err := s.games.Find(ctx, gameID)
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}
	if game == nil {
		return apperrors.NotFound("Game")
	}

	for _, player := range game.Players {
		if err := s.players.Remove(ctx, player.UserID); err != nil {
			return apperrors.StoreUnavailable(err)
		}
	}
	if err := s.games.Remove(ctx, gameID); err != nil {
		return apperrors.StoreUnavailable(err)
	}

	if asset := game.InviteAsset; asset != "" {
		err := s.queue.Enqueue(jobs.Job{
			Name: "delete-invite-asset",
			Run: func(ctx context.Context) error {
				return s.blobs.Remove(ctx, asset)
			},
		})
		if err != nil {
			log.Warn().Err(err).Str("gameId", gameID.String()).Msg("invite asset deletion not scheduled")
		}
	}

	log.Info().Str("gameId", gameID.String()).Msg("game unhosted")
	return nil
}

// Rehost atomically (from the caller's perspective) tears the game down
// and recreates it with the same host, capacity and members. The new game
// gets a fresh id and secret word; the started flag and all roles reset.
func (s *GameService) Rehost(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	old, err := s.games.Find(ctx, gameID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if old == nil {
		return nil, apperrors.NotFound("Game")
	}

	members := make([]model.Player, len(old.Players))
	for i, player := range old.Players {
		player.Role = model.RoleNone
		members[i] = player
	}

	if err := s.Unhost(ctx, gameID); err != nil {
		return nil, err
	}

	word, err := s.words.Draw(ctx, old.HostID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	game := &model.Game{
		GameID:     uuid.New(),
		HostID:     old.HostID,
		Capacity:   old.Capacity,
		SecretWord: word,
		Players:    members,
	}

	if err := s.games.Save(ctx, game); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	for _, player := range members {
		if err := s.players.Create(ctx, player.UserID, game.GameID); err != nil {
			return nil, apperrors.StoreUnavailable(err)
		}
	}

	log.Info().
		Str("oldGameId", gameID.String()).
		Str("gameId", game.GameID.String()).
		Int("players", len(members)).
		Msg("game rehosted")

	return game, nil
}

func (s *GameService) Get(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	game, err := s.games.Find(ctx, gameID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if game == nil {
		return nil, apperrors.NotFound("Game")
	}
	return game, nil
}

// GetByUser resolves a user's current game through the active-player
// index instead of scanning all games.
func (s *GameService) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Game, error) {
	entry, err := s.players.Find(ctx, userID)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if entry == nil {
		return nil, apperrors.NotFound("Game")
	}
	return s.Get(ctx, entry.GameID)
}

func (s *GameService) List(ctx context.Context, limit, offset int) ([]*model.Game, error) {
	games, err := s.games.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return games, nil
}

// AttachInvite schedules generation of the invitation QR asset for the
// join URL. The asset reference lands on the game asynchronously.
func (s *GameService) AttachInvite(ctx context.Context, gameID uuid.UUID, joinURL string) (*model.Game, error) {
	game, err := s.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	assetKey := fmt.Sprintf("%s.png", gameID)
	err = s.queue.Enqueue(jobs.Job{
		Name: "generate-invite-asset",
		Run: func(ctx context.Context) error {
			png, err := s.qr.Generate(joinURL)
			if err != nil {
				return err
			}
			if err := s.blobs.Put(ctx, assetKey, png); err != nil {
				return err
			}
			_, err = s.updateGame(ctx, gameID, func(game *model.Game) (*model.Game, error) {
				if game == nil {
					// Unhosted while the asset was rendering.
					return nil, apperrors.NotFound("Game")
				}
				game.InviteAsset = assetKey
				return game, nil
			})
			return err
		},
	})
	if err != nil {
		return nil, apperrors.Internal("Invitation generation could not be scheduled")
	}

	return game, nil
}

// InviteURL returns a signed URL for the game's invitation asset, or ""
// when none is attached yet.
func (s *GameService) InviteURL(game *model.Game) (string, error) {
	if game.InviteAsset == "" {
		return "", nil
	}
	return s.blobs.URL(game.InviteAsset, s.assetTTL)
}

// updateGame runs fn under the store's optimistic concurrency check,
// retrying lost races with a fresh read.
func (s *GameService) updateGame(ctx context.Context, gameID uuid.UUID, fn func(*model.Game) (*model.Game, error)) (*model.Game, error) {
	for attempt := 0; attempt < config.CASMaxRetries; attempt++ {
		game, err := s.games.Update(ctx, gameID, fn)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			if apperrors.IsAppError(err) {
				return nil, err
			}
			return nil, apperrors.StoreUnavailable(err)
		}
		return game, nil
	}
	return nil, apperrors.StoreUnavailable(repository.ErrConflict)
}
