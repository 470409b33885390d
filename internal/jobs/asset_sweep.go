package jobs

import (
	"context"
	"fmt"
	"time"

	"lsers_hub_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DeviceLister enumerates device namespaces.
type DeviceLister interface {
	Devices(ctx context.Context) ([]string, error)
}

// AssetSweeper removes unreferenced assets of one device.
type AssetSweeper interface {
	Sweep(ctx context.Context, deviceID string, grace time.Duration) int
}

// AssetSweepJob periodically drops asset folder entries no entity refers to any more.
type AssetSweepJob struct {
	devices       DeviceLister
	assets        AssetSweeper
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewAssetSweepJob creates a new AssetSweepJob.
func NewAssetSweepJob(devices DeviceLister, assets AssetSweeper, logger *zap.Logger, cfg *config.Config) *AssetSweepJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &AssetSweepJob{
		devices:       devices,
		assets:        assets,
		logger:        logger.Named("AssetSweepJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *AssetSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.AssetSweepJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Asset sweep schedule not defined (ASSET_SWEEP_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule asset sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Asset sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// RunOnce sweeps every device namespace and reports how many assets were removed.
func (j *AssetSweepJob) RunOnce(ctx context.Context) (int, error) {
	devices, err := j.devices.Devices(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing devices: %w", err)
	}
	removed := 0
	for _, id := range devices {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		removed += j.assets.Sweep(ctx, id, j.cfg.AssetSweepGrace)
	}
	return removed, nil
}

func (j *AssetSweepJob) runJob() {
	j.logger.Info("Starting asset sweep job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.Error("Asset sweep job run failed", zap.Int("assets_removed", removed), zap.Error(err))
		return
	}
	j.logger.Info("Asset sweep job run completed", zap.Int("assets_removed", removed))
}

// Stop gracefully stops the cron scheduler.
func (j *AssetSweepJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping asset sweep job scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Asset sweep job scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Asset sweep job scheduler stop timed out.")
	}
}
