package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Refresh RefreshConfig `mapstructure:"refresh"`

	Polymarket VenueConfig `mapstructure:"polymarket"`
	Manifold   VenueConfig `mapstructure:"manifold"`

	Signals   SignalsConfig   `mapstructure:"signals"`
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
	Backtest  BacktestConfig  `mapstructure:"backtest"`
	Arbitrage ArbitrageConfig `mapstructure:"arbitrage"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type VenueConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Limit   int           `mapstructure:"limit"`
}

type SignalsConfig struct {
	News    NewsSignalConfig    `mapstructure:"news"`
	Crypto  CryptoSignalConfig  `mapstructure:"crypto"`
	Weather WeatherSignalConfig `mapstructure:"weather"`
}

type NewsSignalConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageSize  int           `mapstructure:"page_size"`
}

type CryptoSignalConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type WeatherSignalConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type EstimatorConfig struct {
	NoiseAmplitude     float64 `mapstructure:"noise_amplitude"`
	LiquidityThreshold float64 `mapstructure:"liquidity_threshold"`
}

type PortfolioConfig struct {
	InitialBalance float64 `mapstructure:"initial_balance"`
	Stake          float64 `mapstructure:"stake"`
	SeedThreshold  float64 `mapstructure:"seed_threshold"`
	AgentThreshold float64 `mapstructure:"agent_threshold"`
	AgentTopN      int     `mapstructure:"agent_top_n"`
	SeedLedgerCap  int     `mapstructure:"seed_ledger_cap"`
	LiveLedgerCap  int     `mapstructure:"live_ledger_cap"`
	WinProbability float64 `mapstructure:"win_probability"`
}

type BacktestConfig struct {
	Days           int     `mapstructure:"days"`
	ScoreThreshold float64 `mapstructure:"score_threshold"`
	InitialCapital float64 `mapstructure:"initial_capital"`
	Stake          float64 `mapstructure:"stake"`
}

type ArbitrageConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinSpreadPercent    float64 `mapstructure:"min_spread_percent"`
}

type AnalyticsConfig struct {
	HistoryCap    int     `mapstructure:"history_cap"`
	HighThreshold float64 `mapstructure:"high_threshold"`
	MockHours     int     `mapstructure:"mock_hours"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("refresh.interval", "60s")

	v.SetDefault("polymarket.base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("polymarket.timeout", "10s")
	v.SetDefault("polymarket.limit", 20)
	v.SetDefault("manifold.base_url", "https://api.manifold.markets")
	v.SetDefault("manifold.timeout", "10s")
	v.SetDefault("manifold.limit", 20)

	v.SetDefault("signals.news.endpoint", "https://newsapi.org/v2/everything")
	v.SetDefault("signals.news.api_key_env", "NEWS_API_KEY")
	v.SetDefault("signals.news.timeout", "5s")
	v.SetDefault("signals.news.page_size", 10)
	v.SetDefault("signals.crypto.endpoint", "https://api.coingecko.com/api/v3/simple/price")
	v.SetDefault("signals.crypto.api_key_env", "COINGECKO_API_KEY")
	v.SetDefault("signals.crypto.timeout", "5s")
	v.SetDefault("signals.weather.endpoint", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("signals.weather.timeout", "5s")

	v.SetDefault("estimator.noise_amplitude", 0.08)
	v.SetDefault("estimator.liquidity_threshold", 10000)

	v.SetDefault("portfolio.initial_balance", 1000)
	v.SetDefault("portfolio.stake", 50)
	// Seed and agent thresholds are intentionally separate knobs.
	v.SetDefault("portfolio.seed_threshold", 0.10)
	v.SetDefault("portfolio.agent_threshold", 0.12)
	v.SetDefault("portfolio.agent_top_n", 3)
	v.SetDefault("portfolio.seed_ledger_cap", 20)
	v.SetDefault("portfolio.live_ledger_cap", 30)
	v.SetDefault("portfolio.win_probability", 0.70)

	v.SetDefault("backtest.days", 30)
	v.SetDefault("backtest.score_threshold", 0.08)
	v.SetDefault("backtest.initial_capital", 1000)
	v.SetDefault("backtest.stake", 50)

	v.SetDefault("arbitrage.similarity_threshold", 0.75)
	v.SetDefault("arbitrage.min_spread_percent", 5.0)

	v.SetDefault("analytics.history_cap", 100)
	v.SetDefault("analytics.high_threshold", 0.15)
	v.SetDefault("analytics.mock_hours", 24)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
