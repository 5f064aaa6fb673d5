package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"anilistbot/internal/anilist"
	"anilistbot/internal/api"
	"anilistbot/internal/auth"
	"anilistbot/internal/bot"
	"anilistbot/internal/grpcserver"
	"anilistbot/internal/logging"
	synchub "anilistbot/internal/sync"
	"anilistbot/internal/watchlist"
	"anilistbot/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
	logger.Info("bot stopped")
}

func run(cfg utils.Config, logger *zap.Logger) error {
	if err := cfg.RequireDiscord(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := synchub.NewHub(logger)
	defer hub.Close()

	rawStore, closeStore, err := watchlist.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open watchlist store: %w", err)
	}
	defer func() { _ = closeStore() }()
	store := watchlist.Track(rawStore, cfg.Store.Backend, hub)

	if cfg.Auth.GeneratedSecret {
		logger.Warn("JWT_SECRET not set, using a random secret; dashboard tokens end with this process")
	}
	tokens := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := bot.New(session, anilist.NewClient(cfg.AniListURL, logger), store, tokens, logger)
	b.AppID = cfg.Discord.AppID
	b.GuildID = cfg.Discord.GuildID
	b.Attach(session)

	httpSrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Store:   store,
			Backend: cfg.Store.Backend,
			Hub:     hub,
			Tokens:  tokens,
			Logger:  logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var health *grpcserver.Server
	if cfg.GRPCAddr != "" {
		health = grpcserver.NewServer(cfg.GRPCAddr, logger)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP API listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if health != nil {
		g.Go(health.Run)
	}

	g.Go(func() error {
		if err := session.Open(); err != nil {
			return fmt.Errorf("open discord session: %w", err)
		}
		if _, err := b.Register(gctx); err != nil {
			return err
		}
		if health != nil {
			health.SetServing(true)
		}
		logger.Info("discord session open", zap.String("app_id", cfg.Discord.AppID))
		<-gctx.Done()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if health != nil {
			health.SetServing(false)
			health.Stop()
		}
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
		if err := session.Close(); err != nil {
			logger.Warn("discord close", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
