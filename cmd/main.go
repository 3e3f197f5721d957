// Package main starts the wallet API that manages users, wallets and funds transfers.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/finwallet/fintech-api/cmd/httpserver"
	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/pkg/configpkg"
	"github.com/finwallet/fintech-api/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("wallet api server started")

	if err := server.Engine.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
