// Command classicmatchd serves the classic-match HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"

	"classicmatch"
	"classicmatch/httpapi"
	"classicmatch/notify"
	"classicmatch/store"
)

type appConfig struct {
	Addr           string        `env:"ADDR,default=:8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	CookieSecret   string        `env:"AUTH_COOKIE_SECRET,required"`
	Production     bool          `env:"PRODUCTION,default=false"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS"`
	AdminEmail     string        `env:"ADMIN_EMAIL"`
	AdminPassword  string        `env:"ADMIN_PASSWORD"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	ThrottleMax    int           `env:"LOGIN_THROTTLE_MAX,default=10"`
	ThrottleWindow time.Duration `env:"LOGIN_THROTTLE_WINDOW,default=15m"`
	SMTPHost       string        `env:"SMTP_HOST"`
	SMTPPort       int           `env:"SMTP_PORT,default=587"`
	SMTPUser       string        `env:"SMTP_USER"`
	SMTPPass       string        `env:"SMTP_PASS"`
	SMTPFrom       string        `env:"SMTP_FROM,default=no-reply@example.com"`
	ChatSweepEvery time.Duration `env:"CHAT_SWEEP_INTERVAL,default=1h"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cfg appConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	database, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := store.Close(database); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	engineCfg := classicmatch.NewConfig()
	engineCfg.Secret = cfg.CookieSecret
	engineCfg.Production = cfg.Production
	engineCfg.Admin = classicmatch.AdminConfig{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}
	engineCfg.Audit = classicmatch.AuditConfig{
		Enabled:    true,
		BufferSize: 1024,
		DropIfFull: true,
	}

	var notifier classicmatch.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTP(notify.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	} else {
		log.Warn().Msg("SMTP_HOST unset, one-time codes go to the log")
		notifier = notify.NewLog(log.Logger)
	}

	builder := classicmatch.New().
		WithConfig(engineCfg).
		WithAccountProvider(store.NewAccounts(database)).
		WithCodeStore(store.NewCodes(database)).
		WithNotifier(notifier).
		WithAuditSink(classicmatch.NewJSONWriterSink(os.Stdout))

	if cfg.RedisAddr != "" {
		engineCfg.LoginThrottle = classicmatch.ThrottleConfig{
			Enabled:     true,
			MaxAttempts: cfg.ThrottleMax,
			Window:      cfg.ThrottleWindow,
		}
		builder = builder.
			WithConfig(engineCfg).
			WithRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	engine, err := builder.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}
	defer engine.Close()

	chat := store.NewChat(database)
	go sweepChat(ctx, chat, cfg.ChatSweepEvery)

	api := httpapi.NewServer(httpapi.Options{
		Engine:         engine,
		Profiles:       store.NewProfiles(database),
		Chat:           chat,
		Contact:        store.NewContact(database),
		Logger:         log.Logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting classicmatchd")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}

// sweepChat enforces the public chat retention window on an interval.
func sweepChat(ctx context.Context, chat *store.Chat, every time.Duration) {
	if every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := chat.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("chat sweep")
				continue
			}
			if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("chat sweep")
			}
		}
	}
}
