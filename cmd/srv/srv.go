package main

import (
	"context"
	"net/http"

	"github.com/habitforge/backend/config"
	"github.com/habitforge/backend/internal/client"
	"github.com/habitforge/backend/internal/domain"
	"github.com/habitforge/backend/internal/domain/badge"
	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/domain/proof"
	"github.com/habitforge/backend/internal/domain/statistic"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/authenticator"
	"github.com/habitforge/backend/pkg/logger"
	"github.com/habitforge/backend/pkg/phash"
	"github.com/habitforge/backend/pkg/router"
	"github.com/habitforge/backend/pkg/storage"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/habitforge/backend/pkg/xredis"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo      repository.UserRepository
	habitRepo     repository.HabitRepository
	taskRepo      repository.TaskRepository
	streakRepo    repository.StreakRepository
	xpLogRepo     repository.XPLogRepository
	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
	proofSnapRepo repository.ProofSnapRepository
	statisticRepo repository.StatisticRepository

	streakTracker *progression.Tracker
	ledger        *progression.Ledger
	badgeEngine   *badge.Engine
	aggregator    *statistic.Aggregator
	leaderboard   *statistic.Leaderboard

	habitDomain      *domain.HabitDomain
	taskDomain       *domain.TaskDomain
	completionDomain *domain.CompletionDomain
	badgeDomain      *domain.BadgeDomain
	statisticDomain  *domain.StatisticDomain
	proofGuard       *proof.Guard

	proofStorage storage.Storage
	redisClient  xredis.Client
	notifier     client.NotificationCaller
	tokenEngine  authenticator.TokenEngine[model.AccessToken]

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLoggerWithLevel(level))
}

func (s *srv) loadDatabase() error {
	dbCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      dbCfg.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
	}), &gorm.Config{})
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	return entity.SeedBadges(s.ctx)
}

func (s *srv) loadStorage() {
	s.proofStorage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadRedisClient() error {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	return err
}

func (s *srv) loadNotifier() error {
	rpcClient, err := rpc.DialContext(s.ctx,
		xcontext.Configs(s.ctx).Notification.GatewayRPCServer.Endpoint)
	if err != nil {
		return err
	}

	s.notifier = client.NewNotificationCaller(rpcClient)
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.habitRepo = repository.NewHabitRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.streakRepo = repository.NewStreakRepository()
	s.xpLogRepo = repository.NewXPLogRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.userBadgeRepo = repository.NewUserBadgeRepository()
	s.proofSnapRepo = repository.NewProofSnapRepository()
	s.statisticRepo = repository.NewStatisticRepository()
}

func (s *srv) loadEngines() {
	s.streakTracker = progression.NewTracker(s.streakRepo)
	s.ledger = progression.NewLedger(s.xpLogRepo, s.userRepo)
	s.badgeEngine = badge.NewEngine(
		s.badgeRepo, s.userBadgeRepo, s.statisticRepo, s.notifier,
		badge.DefaultEvaluators()...,
	)
	s.leaderboard = statistic.NewLeaderboard(s.userRepo, s.redisClient)
	s.aggregator = statistic.NewAggregator(
		s.taskRepo, s.xpLogRepo, s.streakRepo, s.proofSnapRepo, s.statisticRepo,
		s.leaderboard,
	)
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration())

	s.habitDomain = domain.NewHabitDomain(s.habitRepo, s.streakRepo)
	s.taskDomain = domain.NewTaskDomain(s.taskRepo, s.habitRepo)
	s.completionDomain = domain.NewCompletionDomain(
		s.taskRepo, s.userRepo, s.streakTracker, s.ledger, s.aggregator, s.badgeEngine)
	s.badgeDomain = domain.NewBadgeDomain(s.badgeRepo, s.userBadgeRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.aggregator, s.leaderboard)
	s.proofGuard = proof.NewGuard(
		s.taskRepo, s.streakRepo, s.proofSnapRepo, s.ledger, s.proofStorage, phash.DHash)
}
