package main

import (
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/platform/database"
	"lsers_hub_backend/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDatabase opens the database and hands back a cleanup that closes it.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { database.CloseGORMDB(db, logger) }, nil
}

// provideChatService pins the chat service to its production delay and clock.
func provideChatService(stores *store.Manager, replies chat.ReplyGenerator, cfg *config.Config, logger *zap.Logger) chat.Service {
	return chat.NewService(stores, replies, cfg, logger)
}
