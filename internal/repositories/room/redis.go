package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizden/quizden/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix     = "room:"
	feedChannelPrefix = "room:feed:"
	activeRoomsKey    = "active_rooms"
)

// ErrRoomNotFound is returned when a room is not found
var ErrRoomNotFound = errors.New("room not found")

// ErrCodeTaken is returned when a room code is already claimed
var ErrCodeTaken = errors.New("room code already taken")

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateRoom inserts a new room document, claiming its code atomically
func (r *redisRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	if input.Room.Code == "" {
		return errors.New("room code cannot be empty")
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// Claim the code; a concurrent creator with the same code loses
	roomKey := fmt.Sprintf("%s%s", roomKeyPrefix, input.Room.Code)
	set, err := r.client.SetNX(ctx, roomKey, roomJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	if !set {
		return ErrCodeTaken
	}

	// Index the room and announce it on the feed
	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, activeRoomsKey, input.Room.Code)
	pipe.Publish(ctx, feedChannel(input.Room.Code), roomJSON)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to index room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by code from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	roomKey := fmt.Sprintf("%s%s", roomKeyPrefix, input.Code)
	roomJSON, err := r.client.Get(ctx, roomKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

// SaveRoom replaces the room document and publishes the full updated row
// to every feed subscriber, including the writer. Last write wins; no
// merging is attempted.
func (r *redisRepository) SaveRoom(ctx context.Context, input *SaveRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.client.Pipeline()

	roomKey := fmt.Sprintf("%s%s", roomKeyPrefix, input.Room.Code)
	pipe.Set(ctx, roomKey, roomJSON, 0)
	pipe.Publish(ctx, feedChannel(input.Room.Code), roomJSON)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// DeleteRoom removes a room from Redis
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and room code cannot be empty")
	}

	pipe := r.client.Pipeline()

	roomKey := fmt.Sprintf("%s%s", roomKeyPrefix, input.Code)
	pipe.Del(ctx, roomKey)
	pipe.SRem(ctx, activeRoomsKey, input.Code)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// ListActiveCodes retrieves the codes of all live rooms from Redis
func (r *redisRepository) ListActiveCodes(ctx context.Context, input *ListActiveCodesInput) (*ListActiveCodesOutput, error) {
	codes, err := r.client.SMembers(ctx, activeRoomsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active room codes: %w", err)
	}

	return &ListActiveCodesOutput{
		Codes: codes,
	}, nil
}

// Subscribe opens the change feed for one room code via Redis pub/sub
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, feedChannel(input.Code))

	// Confirm the subscription before returning so the caller never misses
	// a write issued after Subscribe succeeds
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room feed: %w", err)
	}

	sub := &redisSubscription{
		pubsub:  pubsub,
		updates: make(chan *models.Room, 16),
	}

	go sub.pump(ctx)

	return sub, nil
}

// redisSubscription adapts a Redis pub/sub channel to the Subscription
// interface, decoding each message into a full room snapshot
type redisSubscription struct {
	pubsub  *redis.PubSub
	updates chan *models.Room
}

func (s *redisSubscription) pump(ctx context.Context) {
	defer close(s.updates)

	for msg := range s.pubsub.Channel() {
		var room models.Room
		if err := json.Unmarshal([]byte(msg.Payload), &room); err != nil {
			// A malformed row is skipped; the next write supersedes it anyway
			continue
		}

		select {
		case s.updates <- &room:
		case <-ctx.Done():
			return
		}
	}
}

// Updates yields full room snapshots
func (s *redisSubscription) Updates() <-chan *models.Room {
	return s.updates
}

// Close tears down the subscription
func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}

func feedChannel(code string) string {
	return fmt.Sprintf("%s%s", feedChannelPrefix, code)
}
