package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/envelope"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal/file_journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal/kafka_journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/kyc"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/config"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/otpguard"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/state"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/session"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/artifact"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/placement"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
)

const (
	flagConfigPath = "config"

	shutdownTimeout = 10 * time.Second
)

func init() {
	rootCmd.PersistentFlags().String(flagConfigPath, "", "Path to a YAML config file, COSIGN_ env vars override its values")
}

var rootCmd = &cobra.Command{
	Use:   "cosign_d",
	Short: "co-signing orchestrator daemon",
}

func main() {
	rootCmd.AddCommand(
		startCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}

func parseProducerCredentials(creds string) (*kafka_journal.KafkaAuthCredentials, error) {
	credsSplit := strings.SplitN(creds, ":", 2)
	if len(credsSplit) == 1 {
		return nil, fmt.Errorf("failed to parse credentials")
	}
	return &kafka_journal.KafkaAuthCredentials{
		Username: credsSplit[0],
		Password: credsSplit[1],
	}, nil
}

func buildJournal(cfg *config.JournalConfig) (journal.Journal, error) {
	if cfg == nil {
		return journal.Nop{}, nil
	}
	switch cfg.Backend {
	case "file":
		return file_journal.NewFileJournal(cfg.FilePath)
	case "kafka":
		var tlsConfig *tls.Config
		if cfg.KafkaTrustStorePath != "" {
			var err error
			if tlsConfig, err = kafka_journal.GetTLSConfig(cfg.KafkaTrustStorePath); err != nil {
				return nil, fmt.Errorf("failed to create tls config: %w", err)
			}
		}
		var producerCreds *plain.Mechanism
		if cfg.ProducerCredentials != "" {
			creds, err := parseProducerCredentials(cfg.ProducerCredentials)
			if err != nil {
				return nil, err
			}
			producerCreds = creds.Mechanism()
		}
		return kafka_journal.NewKafkaJournal(cfg.KafkaEndpoint, cfg.KafkaTopic, tlsConfig, producerCreds, cfg.KafkaTimeout)
	case "none":
		return journal.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Backend)
	}
}

func startCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "starts the co-signing orchestrator daemon",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := cmd.Flags().GetString(flagConfigPath)
			if err != nil {
				log.Fatalf("failed to read configuration: %v", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				log.Fatalf("failed to load configuration: %v", err)
			}
			if err = cfg.Validate(); err != nil {
				log.Fatalf("invalid configuration: %v", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			appLogger := logger.NewLogger("cosign_d")

			stateStore, err := state.NewLevelDBState(cfg.StateConfig.DBDSN, cfg.StateConfig.Namespace)
			if err != nil {
				log.Fatalf("Failed to init state store: %v", err)
			}

			sessionRepo, err := session.NewSessionRepo(stateStore, cfg.StateConfig.Namespace)
			if err != nil {
				log.Fatalf("Failed to init session repo: %v", err)
			}

			pool, err := pgxpool.New(ctx, cfg.LedgerConfig.PostgresDSN)
			if err != nil {
				log.Fatalf("Failed to connect to the ledger database: %v", err)
			}
			ledgerRepo := ledger.NewLedgerRepo(pool)
			if err = ledgerRepo.Bootstrap(ctx); err != nil {
				log.Fatalf("Failed to bootstrap the ledger schema: %v", err)
			}

			auditJournal, err := buildJournal(cfg.JournalConfig)
			if err != nil {
				log.Fatalf("Failed to init journal: %v", err)
			}

			guard := otpguard.NewMemoryGuard(cfg.OTPGuardConfig.EntryTTL, cfg.OTPGuardConfig.SweepInterval, appLogger)

			placementService, err := placement.NewPlacementService(
				cfg.PlacementConfig.Tables,
				cfg.PlacementConfig.FallbackWidth,
				cfg.PlacementConfig.FallbackHeight,
				appLogger,
			)
			if err != nil {
				log.Fatalf("Failed to init placement service: %v", err)
			}

			artifactStore, err := artifact.NewStore(cfg.ArtifactConfig.Dir)
			if err != nil {
				log.Fatalf("Failed to init artifact store: %v", err)
			}

			authorityClient := authority.NewClient(authority.Config{
				BaseURL:      cfg.AuthorityConfig.BaseURL,
				ClientID:     cfg.AuthorityConfig.ClientID,
				ClientSecret: cfg.AuthorityConfig.ClientSecret,
				MaxAttempts:  cfg.AuthorityConfig.MaxAttempts,
				BackoffStep:  cfg.AuthorityConfig.BackoffStep,
				CallTimeout:  cfg.AuthorityConfig.CallTimeout,
			})
			envelopeClient := envelope.NewClient(cfg.EnvelopeConfig.BaseURL, cfg.EnvelopeConfig.AuthToken, cfg.EnvelopeConfig.Timeout)
			kycClient := kyc.NewClient(cfg.KYCConfig.FaceURL, cfg.KYCConfig.LivenessURL, cfg.KYCConfig.OCRURL, cfg.KYCConfig.Timeout)

			sp := services.ServiceProvider{}
			sp.SetLogger(appLogger)
			sp.SetState(stateStore)
			sp.SetSessionRepo(sessionRepo)
			sp.SetLedgerRepo(ledgerRepo)
			sp.SetJournal(auditJournal)
			sp.SetOTPGuard(guard)
			sp.SetAuthority(authorityClient)
			sp.SetEnvelope(envelopeClient)
			sp.SetKYC(kycClient)
			sp.SetPlacement(placementService)
			sp.SetArtifacts(artifactStore)

			workflowService := workflow.NewWorkflowService(&sp, cfg.SessionConfig.TTL)

			var server http_api.RESTApiProvider
			if err = server.NewServer(cfg, workflowService, &sp); err != nil {
				log.Fatalf("Failed to init HTTP server: %v", err)
			}

			group, groupCtx := errgroup.WithContext(ctx)

			group.Go(func() error {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("HTTP server error: %w", err)
				}
				return nil
			})

			group.Go(func() error {
				guard.Start(groupCtx)
				return nil
			})

			group.Go(func() error {
				ticker := time.NewTicker(cfg.SessionConfig.JanitorInterval)
				defer ticker.Stop()
				for {
					select {
					case <-groupCtx.Done():
						return nil
					case <-ticker.C:
						removed, err := sessionRepo.DeleteExpired(time.Now().UTC())
						if err != nil {
							appLogger.Log("Failed to delete expired sessions: %v", err)
							continue
						}
						if removed > 0 {
							appLogger.Log("Janitor removed %d expired sessions", removed)
						}
					}
				}
			})

			group.Go(func() error {
				sigs := make(chan os.Signal, 1)
				signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
				select {
				case <-groupCtx.Done():
					return nil
				case sig := <-sigs:
					appLogger.Log("Received signal %v, stopping daemon...", sig)
					cancel()

					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer shutdownCancel()
					if err := server.Stop(shutdownCtx); err != nil {
						appLogger.Log("Failed to stop HTTP server gracefully: %v", err)
					}
					return nil
				}
			})

			appLogger.Log("Daemon started, HTTP API listening on %s", cfg.HttpApiConfig.ListenAddr)
			if err = group.Wait(); err != nil {
				log.Fatalf("Daemon stopped with error: %v", err)
			}

			if err = auditJournal.Close(); err != nil {
				appLogger.Log("Failed to close journal: %v", err)
			}
			pool.Close()
			appLogger.Log("Daemon stopped")
		},
	}
}
