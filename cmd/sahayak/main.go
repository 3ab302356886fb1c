package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/catalog"
	"github.com/approwess/sahayak-ai/config"
	"github.com/approwess/sahayak-ai/lesson"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/llm/gemini"
	"github.com/approwess/sahayak-ai/llm/openai"
	"github.com/approwess/sahayak-ai/server"
	"github.com/approwess/sahayak-ai/visual"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading configuration")
	}

	ctx := context.Background()
	text, images, cleanup, err := buildProviders(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("initializing providers")
	}
	defer cleanup()

	cat := catalog.Load(cfg.CatalogPath)
	logrus.WithField("resources", cat.Len()).Info("resource catalog loaded")

	engine := lesson.NewEngine(text, images, cat, visual.NewDocumentBuilder(cfg.OutputDir),
		lesson.WithResourceBaseURL(cfg.ResourceBaseURL),
		lesson.WithMaxImages(cfg.MaxImages),
	)
	assessments := lesson.NewAssessmentGenerator(text)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(engine, assessments, cfg.OutputDir).Router(),
	}

	go func() {
		logrus.WithField("addr", cfg.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown incomplete")
	}
}

// buildProviders wires the configured text provider and, when Gemini
// credentials are present, the image provider. The returned cleanup releases
// provider resources.
func buildProviders(ctx context.Context, cfg *config.Config) (llm.Provider, llm.ImageProvider, func(), error) {
	cleanup := func() {}

	var geminiClient *gemini.GeminiClient
	if os.Getenv("GOOGLE_API_KEY") != "" {
		geminiConfig, err := gemini.NewConfigFromEnv()
		if err != nil {
			return nil, nil, cleanup, err
		}
		geminiConfig.OutputDir = cfg.OutputDir
		geminiClient, err = gemini.NewGeminiClient(ctx, geminiConfig)
		if err != nil {
			return nil, nil, cleanup, err
		}
		cleanup = geminiClient.Close
	}

	var images llm.ImageProvider
	if geminiClient != nil {
		images = geminiClient
	} else {
		logrus.Warn("GOOGLE_API_KEY not set, image generation disabled")
	}

	switch cfg.Provider {
	case "openai":
		text, err := openai.NewOpenAIClientFromEnv()
		if err != nil {
			return nil, nil, cleanup, err
		}
		return text, images, cleanup, nil
	default:
		if geminiClient == nil {
			return nil, nil, cleanup, errors.New("gemini provider selected but GOOGLE_API_KEY is not set")
		}
		return geminiClient, images, cleanup, nil
	}
}
