package main

import (
	"fmt"
	"net/http"

	"github.com/habitforge/backend/internal/middleware"
	"github.com/habitforge/backend/pkg/router"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}
	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadNotifier(); err != nil {
		return err
	}

	s.loadStorage()
	s.loadRepos()
	s.loadEngines()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))

	authRouter := s.router.Branch()
	authRouter.Before(middleware.VerifyAccessToken(s.tokenEngine))
	{
		// Habit API
		router.POST(authRouter, "/createHabit", s.habitDomain.Create)
		router.GET(authRouter, "/getMyHabits", s.habitDomain.GetMyHabits)
		router.POST(authRouter, "/archiveHabit", s.habitDomain.Archive)

		// Task API
		router.POST(authRouter, "/createTask", s.taskDomain.Create)
		router.GET(authRouter, "/getMyTasks", s.taskDomain.GetMyTasks)
		router.POST(authRouter, "/completeTask", s.completionDomain.Complete)

		// Proof API
		router.POST(authRouter, "/submitProof", s.proofGuard.Submit)

		// Badge API
		router.GET(authRouter, "/getMyBadges", s.badgeDomain.GetMyBadges)

		// Statistic API
		router.GET(authRouter, "/getMyStatistic", s.statisticDomain.GetMyStatistic)
		router.GET(authRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}
}
