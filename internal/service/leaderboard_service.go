package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/repository"
)

const (
	LeaderboardWindow = 24 * time.Hour
	LeaderboardSize   = 5

	leaderboardCacheKey = "leaderboard:24h"
	leaderboardCacheTTL = 30 * time.Second
)

type LeaderboardService interface {
	// GetLeaderboard ranks the top users by karma received within the
	// trailing 24-hour window, computed at call time.
	GetLeaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error)
	// InvalidateCache drops the cached ranking after a karma mutation.
	InvalidateCache(ctx context.Context)
}

type leaderboardService struct {
	karmaRepo   repository.KarmaRepository
	redisClient *redis.Client
}

// NewLeaderboardService accepts a nil redis client, in which case every read
// hits the store directly.
func NewLeaderboardService(karmaRepo repository.KarmaRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		karmaRepo:   karmaRepo,
		redisClient: redisClient,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	if entries, ok := s.fromCache(ctx); ok {
		return entries, nil
	}

	since := time.Now().Add(-LeaderboardWindow)
	scores, err := s.karmaRepo.TopRecipients(ctx, since, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(scores))
	for _, score := range scores {
		entries = append(entries, dto.LeaderboardEntry{
			ID:       score.UserID,
			Username: score.Username,
			Karma24h: score.Points,
		})
	}

	s.toCache(ctx, entries)
	return entries, nil
}

func (s *leaderboardService) InvalidateCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate leaderboard cache: %v", err)
	}
}

func (s *leaderboardService) fromCache(ctx context.Context) ([]dto.LeaderboardEntry, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	payload, err := s.redisClient.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		// Cache miss or redis trouble, fall through to the store either way.
		return nil, false
	}

	var entries []dto.LeaderboardEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		log.Printf("Invalid cached leaderboard payload: %v", err)
		return nil, false
	}
	return entries, true
}

func (s *leaderboardService) toCache(ctx context.Context, entries []dto.LeaderboardEntry) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache leaderboard: %v", err)
	}
}
