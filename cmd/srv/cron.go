package main

import (
	"github.com/habitforge/backend/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
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

	s.loadStorage()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewProofExpiryCronJob(s.ctx, s.proofSnapRepo, s.proofStorage))
	cronJobManager.Register(cron.NewProofQuotaCronJob(s.ctx, s.proofSnapRepo, s.proofStorage))
	cronJobManager.Start(s.ctx)

	return nil
}
