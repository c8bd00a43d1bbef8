package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"propale/internal/mailer"
	"propale/internal/pdfmerge"
	"propale/internal/platform/config"
	"propale/internal/platform/httpserver"
	"propale/internal/platform/logger"
	"propale/internal/platform/metrics"
	platformredis "propale/internal/platform/redis"
	"propale/internal/renderer"
	"propale/internal/signature"
	"propale/internal/signature/audit"
	httptransport "propale/internal/transport/http"
	"propale/internal/verification/service"
	"propale/internal/verification/store"
)

const auditBuffer = 256

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.DevMode)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Verification code store: Redis when configured, in-memory otherwise.
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	var codeStore store.Store = store.NewMemory()
	var health httptransport.HealthChecker
	if redisClient != nil {
		defer redisClient.Close()
		codeStore = store.NewRedis(redisClient.Client)
		health = redisClient
		log.Info("verification codes stored in redis")
	} else {
		log.Info("verification codes stored in memory")
	}

	var mail mailer.Mailer
	if cfg.DevMode {
		mail = mailer.NewConsoleMailer(log)
	} else {
		mail = mailer.NewAPIMailer(cfg.EmailEndpoint, cfg.EmailServiceID, cfg.EmailTemplateID, cfg.EmailPublicKey, nil)
	}

	// Audit trail: Kafka when brokers are configured, logs otherwise.
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 && !cfg.DevMode {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit trail published to kafka", "topic", audit.Topic)
	} else {
		sink = audit.NewLogSink(log)
	}
	pipeline := audit.NewPipeline(sink, log, auditBuffer)
	pipeline.Start(ctx)
	defer pipeline.Stop()

	verifier, err := service.New(codeStore, mail,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithRecorder(pipeline),
		service.WithTTL(config.CodeTTL),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger: log,
		Proposals: httptransport.NewProposalHandler(
			renderer.NewFPDF(log),
			pdfmerge.New(cfg.PlanBaseURL, log, pdfmerge.WithFallbackHook(m.PlanMergeFallbacks.Inc)),
			log,
			m,
		),
		Signature: httptransport.NewSignatureHandler(
			verifier,
			signature.NewTicketService(cfg.JWTSigningKey),
			pipeline,
			log,
		),
		Store: health,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
