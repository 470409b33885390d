//go:build wireinject
// +build wireinject

package main

import (
	"lsers_hub_backend/internal/ai"
	"lsers_hub_backend/internal/app"
	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/auth"
	"lsers_hub_backend/internal/booking"
	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/favorites"
	"lsers_hub_backend/internal/jobs"
	"lsers_hub_backend/internal/middleware"
	"lsers_hub_backend/internal/platform/kv"
	"lsers_hub_backend/internal/platform/logger"
	"lsers_hub_backend/internal/product"
	"lsers_hub_backend/internal/property"
	"lsers_hub_backend/internal/provider"
	"lsers_hub_backend/internal/review"
	"lsers_hub_backend/internal/rewards"
	"lsers_hub_backend/internal/sitecontent"
	"lsers_hub_backend/internal/store"
	"lsers_hub_backend/internal/upload"
	"lsers_hub_backend/internal/user"

	"github.com/google/wire"
)

// storageSet builds the per-device slot storage on top of the configured backend.
var storageSet = wire.NewSet(
	provideDatabase,
	kv.NewBackend,
	store.NewManager,
	assets.NewService,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		storageSet,

		// Identity
		user.NewStoreRepository,
		user.NewService,
		auth.NewService,
		wire.Bind(new(auth.UserAttacher), new(user.Service)),
		wire.Bind(new(user.Credentials), new(auth.Service)),
		wire.Bind(new(middleware.SessionSource), new(auth.Service)),
		auth.NewHandler,
		user.NewHandler,

		// Catalog and listings
		category.NewStaticRepository,
		category.NewService,
		category.NewHandler,
		review.NewService,
		review.NewHandler,
		provider.NewService,
		provider.NewHandler,
		product.NewService,
		product.NewHandler,
		property.NewStaticRepository,
		property.NewService,
		property.NewHandler,

		// AI collaborator
		ai.NewCollaborator,
		ai.NewService,
		ai.NewHandler,

		// Booking, chat and rewards
		provideChatService,
		wire.Bind(new(chat.ReplyGenerator), new(ai.Service)),
		chat.NewHandler,
		rewards.NewService,
		rewards.NewHandler,
		wire.Bind(new(booking.ThreadOpener), new(chat.Service)),
		wire.Bind(new(booking.PointsLedger), new(rewards.Service)),
		booking.NewService,
		booking.NewHandler,
		favorites.NewService,
		favorites.NewHandler,

		// Site content and uploads
		sitecontent.NewService,
		sitecontent.NewHandler,
		upload.NewImageService,
		upload.NewHandler,

		// Jobs
		wire.Bind(new(jobs.DeviceLister), new(*store.Manager)),
		wire.Bind(new(jobs.AssetSweeper), new(assets.Service)),
		jobs.NewAssetSweepJob,

		// Application Layer
		wire.Struct(new(app.Handlers), "*"),
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeSweepJob wires just enough to run the asset sweep once.
func initializeSweepJob(cfg *config.Config) (*jobs.AssetSweepJob, func(), error) {
	wire.Build(
		logger.New,
		storageSet,
		wire.Bind(new(jobs.DeviceLister), new(*store.Manager)),
		wire.Bind(new(jobs.AssetSweeper), new(assets.Service)),
		jobs.NewAssetSweepJob,
	)
	return nil, nil, nil
}
