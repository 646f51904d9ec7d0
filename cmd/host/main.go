package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizden/quizden/internal/common/clock"
	"github.com/quizden/quizden/internal/common/random"
	"github.com/quizden/quizden/internal/common/uuid"
	"github.com/quizden/quizden/internal/config"
	"github.com/quizden/quizden/internal/countdown"
	"github.com/quizden/quizden/internal/models"
	"github.com/quizden/quizden/internal/questions"
	identityRepo "github.com/quizden/quizden/internal/repositories/identity"
	"github.com/quizden/quizden/internal/repositories/room"
	"github.com/quizden/quizden/internal/services/bots"
	"github.com/quizden/quizden/internal/services/engine"
	identityService "github.com/quizden/quizden/internal/services/identity"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	roomRepo, err := room.NewRedis(&room.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room repository")
	}

	identityStore, err := identityRepo.NewFile(&identityRepo.FileConfig{
		Path: cfg.IdentityPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create identity store")
	}

	systemClock := &clock.DefaultClock{}
	uuidGenerator := uuid.New()
	randomSource := random.New(&random.Config{})

	// Initialize services
	roomEngine, err := engine.New(&engine.Config{
		MaxPlayers:    cfg.MaxPlayers,
		RoundDuration: time.Duration(cfg.RoundSeconds) * time.Second,
		RoomRepo:      roomRepo,
		Questions:     questions.NewStatic(nil),
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
		Random:        randomSource,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room engine")
	}

	identitySvc, err := identityService.New(&identityService.Config{
		RoomRepo:      roomRepo,
		IdentityStore: identityStore,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create identity service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resume the previous room if this device still holds a seat in one,
	// otherwise create a fresh room and seed it with bots
	resolved, err := identitySvc.Resolve(ctx, &identityService.ResolveInput{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve identity")
	}

	var code string
	if resolved.Status == identityService.StatusResumed {
		code = resolved.Room.Code
		log.Info().Str("room", code).Msg("resumed existing room")
	} else {
		created, err := roomEngine.CreateRoom(ctx, &engine.CreateRoomInput{
			HostID:   resolved.PlayerID,
			HostName: cfg.HostName,
			Mode:     models.Mode(cfg.Mode),
			Category: cfg.Category,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create room")
		}
		code = created.Room.Code

		if err := identitySvc.RememberJoin(ctx, &identityService.RememberJoinInput{
			Code:         code,
			SessionToken: created.SessionToken,
			Name:         cfg.HostName,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to persist room session")
		}

		for i := 0; i < cfg.Bots; i++ {
			if _, err := roomEngine.AddBot(ctx, &engine.AddBotInput{
				Code:     code,
				PlayerID: resolved.PlayerID,
				BotName:  fmt.Sprintf("Bot %d", i+1),
			}); err != nil {
				log.Fatal().Err(err).Msg("failed to add bot")
			}
		}

		log.Info().Str("room", code).Int("bots", cfg.Bots).Msg("created room")
	}

	// The host client drives bots and the round timer for the whole room
	botDriver, err := bots.NewDriver(&bots.Config{
		Engine:   roomEngine,
		RoomRepo: roomRepo,
		Random:   randomSource,
		Log:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot driver")
	}

	timerDriver, err := countdown.NewDriver(&countdown.Config{
		Engine: roomEngine,
		Clock:  systemClock,
		Log:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create countdown driver")
	}

	botSub, err := roomRepo.Subscribe(ctx, &room.SubscribeInput{Code: code})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe to room feed")
	}
	defer func() { _ = botSub.Close() }()

	timerSub, err := roomRepo.Subscribe(ctx, &room.SubscribeInput{Code: code})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe to room feed")
	}
	defer func() { _ = timerSub.Close() }()

	// Prime the bot driver with the current document so a room already in
	// flight picks up where it left off
	if current, err := roomRepo.GetRoom(ctx, &room.GetRoomInput{Code: code}); err == nil {
		botDriver.Observe(ctx, current)
	}

	go botDriver.Watch(ctx, botSub.Updates())
	go timerDriver.Watch(ctx, timerSub.Updates())

	log.Info().Str("room", code).Msg("host client running; share the room code")

	// Wait for interrupt signal to gracefully shut down
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	log.Info().Msg("host client shut down")
}
