package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/darkchannels/studio/backend/cmd/studioctl/commands"
	"github.com/darkchannels/studio/backend/internal/config"
	"github.com/darkchannels/studio/backend/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("não foi possível carregar o fuso horário", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := repository.OpenDB(cfg)
	if err != nil {
		logger.Error("não foi possível conectar ao banco de dados", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()

	root := commands.NewRootCmd(&commands.Deps{
		Store:           repository.NewRepository(cfg, dbpool),
		Location:        loc,
		Now:             time.Now,
		DefaultOwner:    cfg.InitialAdmin.Email,
		HorizonDays:     cfg.Scheduling.NextSlotHorizonDays,
		LongHorizonDays: cfg.Scheduling.LongHorizonDays,
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		dbpool.Close()
		os.Exit(1)
	}
}
