package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketlens/internal/analytics"
	"marketlens/internal/arbitrage"
	"marketlens/internal/backtest"
	"marketlens/internal/client/manifold"
	"marketlens/internal/client/polymarket"
	"marketlens/internal/config"
	cronrunner "marketlens/internal/cron"
	"marketlens/internal/estimator"
	"marketlens/internal/handler"
	"marketlens/internal/ingest"
	"marketlens/internal/logger"
	"marketlens/internal/pipeline"
	"marketlens/internal/portfolio"
	signalsource "marketlens/internal/signal"
	"marketlens/internal/simrand"
)

func main() {
	cfgPath := os.Getenv("ML_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ML_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	polyClient := polymarket.NewClient(&http.Client{Timeout: cfg.Polymarket.Timeout}, cfg.Polymarket.BaseURL)
	maniClient := manifold.NewClient(&http.Client{Timeout: cfg.Manifold.Timeout}, cfg.Manifold.BaseURL)
	fetcher := &ingest.Fetcher{
		Polymarket:      polyClient,
		Manifold:        maniClient,
		Logger:          logger,
		PolymarketLimit: cfg.Polymarket.Limit,
		ManifoldLimit:   cfg.Manifold.Limit,
	}

	rng := simrand.New(time.Now().UnixNano())
	est := &estimator.Estimator{
		News: &signalsource.NewsSource{
			HTTP:      &http.Client{Timeout: cfg.Signals.News.Timeout},
			Logger:    logger,
			Endpoint:  cfg.Signals.News.Endpoint,
			APIKeyEnv: cfg.Signals.News.APIKeyEnv,
			PageSize:  cfg.Signals.News.PageSize,
		},
		Crypto: &signalsource.CryptoSource{
			HTTP:      &http.Client{Timeout: cfg.Signals.Crypto.Timeout},
			Logger:    logger,
			Endpoint:  cfg.Signals.Crypto.Endpoint,
			APIKeyEnv: cfg.Signals.Crypto.APIKeyEnv,
		},
		Political: &signalsource.PoliticalSource{Rand: rng},
		Weather: &signalsource.WeatherSource{
			HTTP:     &http.Client{Timeout: cfg.Signals.Weather.Timeout},
			Logger:   logger,
			Endpoint: cfg.Signals.Weather.Endpoint,
		},
		Logger:             logger,
		Rand:               rng,
		NoiseAmplitude:     cfg.Estimator.NoiseAmplitude,
		LiquidityThreshold: cfg.Estimator.LiquidityThreshold,
	}

	portfolioSim := portfolio.New(portfolio.Config{
		InitialBalance: cfg.Portfolio.InitialBalance,
		Stake:          cfg.Portfolio.Stake,
		SeedLedgerCap:  cfg.Portfolio.SeedLedgerCap,
		LiveLedgerCap:  cfg.Portfolio.LiveLedgerCap,
		WinProbability: cfg.Portfolio.WinProbability,
	}, nil, logger)
	backtestSim := backtest.New(backtest.Config{
		Days:           cfg.Backtest.Days,
		ScoreThreshold: cfg.Backtest.ScoreThreshold,
		InitialCapital: cfg.Backtest.InitialCapital,
		Stake:          cfg.Backtest.Stake,
	}, nil, logger)
	tracker := &analytics.Tracker{
		HistoryCap:    cfg.Analytics.HistoryCap,
		HighThreshold: cfg.Analytics.HighThreshold,
	}
	matcher := &arbitrage.Matcher{
		SimilarityThreshold: cfg.Arbitrage.SimilarityThreshold,
		MinSpreadPercent:    cfg.Arbitrage.MinSpreadPercent,
	}

	pipe := &pipeline.Pipeline{
		Source:         fetcher,
		Estimator:      est,
		Portfolio:      portfolioSim,
		Backtest:       backtestSim,
		Tracker:        tracker,
		Logger:         logger,
		SeedThreshold:  cfg.Portfolio.SeedThreshold,
		AgentThreshold: cfg.Portfolio.AgentThreshold,
		AgentTopN:      cfg.Portfolio.AgentTopN,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Pipeline: pipe}
	healthHandler.Register(engine)
	marketsHandler := &handler.MarketsHandler{Pipeline: pipe}
	marketsHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{
		Pipeline:  pipe,
		Tracker:   tracker,
		MockHours: cfg.Analytics.MockHours,
	}
	analyticsHandler.Register(engine)
	portfolioHandler := &handler.PortfolioHandler{Simulator: portfolioSim}
	portfolioHandler.Register(engine)
	backtestHandler := &handler.BacktestHandler{Simulator: backtestSim}
	backtestHandler.Register(engine)
	arbitrageHandler := &handler.ArbitrageHandler{Pipeline: pipe, Matcher: matcher}
	arbitrageHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First cycle runs before the server accepts traffic so /readyz and
	// /api/markets have data immediately.
	logger.Info("running initial refresh cycle")
	pipe.Refresh(ctx)

	cronRunner := cronrunner.New(logger, ctx)
	interval := cfg.Refresh.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	_, err = cronRunner.Add("@every "+interval.String(), func(ctx context.Context) {
		pipe.Refresh(ctx)
	})
	if err != nil {
		logger.Warn("cron register refresh failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
