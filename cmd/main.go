package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Artexxx/HR-Registry/internal/api"
	"github.com/Artexxx/HR-Registry/internal/audit"
	"github.com/Artexxx/HR-Registry/internal/config"
	"github.com/Artexxx/HR-Registry/internal/exchange/consumer"
	"github.com/Artexxx/HR-Registry/internal/exchange/producer"
	"github.com/Artexxx/HR-Registry/internal/migrate"
	"github.com/Artexxx/HR-Registry/internal/repository/department"
	"github.com/Artexxx/HR-Registry/internal/repository/employee"
	"github.com/Artexxx/HR-Registry/internal/repository/events"
	"github.com/Artexxx/HR-Registry/internal/repository/history"
	"github.com/Artexxx/HR-Registry/internal/repository/job"
	"github.com/Artexxx/HR-Registry/internal/service/employees"
	"github.com/Artexxx/HR-Registry/library/pg"
	"github.com/Artexxx/HR-Registry/library/yamlreader"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	if err := migrate.Up(rootCtx, pgClient.Pool(), log.Logger); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	employeeRepo := employee.NewRepository(pgClient.Pool())
	historyRepo := history.NewRepository(pgClient.Pool())
	jobRepo := job.NewRepository(pgClient.Pool())
	deptRepo := department.NewRepository(pgClient.Pool())
	eventsRepo := events.NewRepository(pgClient.Pool())

	hrProducer, err := initHRProducer(cfg.Kafka)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka producer init failed")
	}
	defer func() { _ = hrProducer.Close() }()

	recorder := audit.NewRecorder(log.Logger)

	employeeService := employees.NewService(employees.ServiceDeps{
		Tx:        employees.NewPgxRunner(pgClient.Pool()),
		Employees: employeeRepo,
		History:   historyRepo,
		Recorder:  recorder,
		Producer:  hrProducer,
		Log:       log.Logger,
	})

	apiService := api.NewService(api.ServiceDeps{
		Port:         cfg.UserAPI.Port.Value,
		Employees:    employeeService,
		EmployeeRepo: employeeRepo,
		JobRepo:      jobRepo,
		DeptRepo:     deptRepo,
		EventsRepo:   eventsRepo,
	})

	consumerAssignments := consumer.NewAssignmentsRunner(
		cfg.Kafka.Bootstrap.Value,
		cfg.Kafka.Topics.Commands.Value,
		"consumer_assignments",
		eventsRepo,
		employeeService,
		log.Logger,
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("запуск HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API завершился с ошибкой")

			return err
		}

		log.Info().Msg("HTTP API остановлен")

		return nil
	})

	group.Go(func() error {
		log.Info().Msg("запуск consumer_assignments")
		if err := consumerAssignments.Start(gctx); err != nil {
			log.Error().Err(err).Msg("consumer_assignments завершился с ошибкой")

			return err
		}

		log.Info().Msg("consumer_assignments остановлен")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initHRProducer(kafkaConfig config.KafkaConfig) (*producer.HRProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	hrProd := producer.NewHRProducer(
		sp,
		producer.Config{
			TopicAssignments: kafkaConfig.Topics.Assignments.Value,
			Source:           "hr-registry-api",
		},
		log.Logger,
	)

	return hrProd, nil
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)

	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("ошибка чтения конфигурации приложения")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
