package main

import (
	"Explainer/ai"
	"Explainer/bot"
	"Explainer/core"
	"Explainer/lib/sl"
	"Explainer/storage"
	"Explainer/web"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := core.MustLoad(*configPath)
	log := setupLogger(conf.Env)
	log.With(
		slog.String("config", *configPath),
		slog.String("env", conf.Env),
		slog.String("api", conf.ApiURL),
		slog.Duration("timeout", conf.Timeout),
		sl.Secret(conf.GroqApiKey),
	).Info("starting code explainer")
	if conf.GroqApiKey == "" {
		log.Warn("GROQ_API_KEY is not set, requests will be rejected by the API")
	}

	journal := openJournal(conf, log)
	explainer := ai.NewExplainer(conf, log, journal)

	router, err := web.NewRouter(explainer, journal, log)
	if err != nil {
		log.Error("creating router", sl.Err(err))
		return
	}
	server := &http.Server{
		Addr:              conf.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("web server started", slog.String("listen", conf.Listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("web server stopped with error", sl.Err(err))
		}
	}()

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		tgBot, err = bot.NewTgBot(conf, log)
		if err != nil {
			log.Error("creating telegram", sl.Err(err))
		} else {
			tgBot.SetExplainer(explainer)
			go func() {
				if err := tgBot.Start(); err != nil {
					log.Error("bot stopped with error", sl.Err(err))
				}
			}()
			log.Info("bot started")
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received signal, shutting down", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutting down web server", sl.Err(err))
	}
	if tgBot != nil {
		tgBot.Stop()
	}
	explainer.Close()
	if err := journal.Close(); err != nil {
		log.Error("closing journal", sl.Err(err))
	}

	log.Info("shutdown complete")
}

func openJournal(conf *core.Config, log *slog.Logger) storage.Journal {
	if !conf.Mongo.Enabled {
		log.Info("using in-memory journal")
		return storage.NewMemoryJournal(0)
	}
	journal, err := storage.NewMongoJournal(conf.MongoURI(), conf.Mongo.Database, log)
	if err != nil {
		log.With(
			slog.String("db", conf.Mongo.Database),
			slog.String("user", conf.Mongo.User),
			slog.String("host", conf.Mongo.Host),
		).Error("falling back to memory", sl.Err(err))
		return storage.NewMemoryJournal(0)
	}
	log.Info("using MongoDB journal")
	return journal
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal, envDev:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
