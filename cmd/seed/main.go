package main

import (
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/darkchannels/studio/backend/internal/config"
	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/darkchannels/studio/backend/internal/seed"
	"github.com/darkchannels/studio/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var ownerEmail string

	flag.IntVar(&op, "op", 0, "operação (1: membros aleatórios, 2: canais aleatórios, 3: ideias e vídeos aleatórios, 4: dados de demonstração)")
	flag.IntVar(&n, "n", 5, "quantidade de registros")
	flag.StringVar(&ownerEmail, "owner", "", "e-mail do responsável (padrão: administrador inicial)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := repository.OpenDB(cfg)
	if err != nil {
		logger.Error("não foi possível conectar ao banco de dados", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()

	repo := repository.NewRepository(cfg, dbpool)

	if ownerEmail == "" {
		ownerEmail = cfg.InitialAdmin.Email
	}
	owner, err := repo.GetUserByEmail(ownerEmail)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			logger.Error("responsável não encontrado, inicie a API uma vez para criar o administrador", slog.String("email", ownerEmail))
		default:
			logger.Error("não foi possível obter o responsável", slog.String("error", err.Error()))
		}
		return
	}

	if op != 4 && n <= 0 {
		logger.Error("informe uma quantidade válida")
		return
	}

	switch op {
	case 0:
		logger.Error("nenhuma operação informada")
	case 1:
		cnt := 0
		for i := 0; i < n; i++ {
			member, err := utils.GenerateRandomMember(owner.ID, cfg.Seed.Member.Password, cfg.Email.MemberDomain)
			if err != nil {
				logger.Error("não foi possível gerar o membro", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateMember(member); err != nil {
				logger.Error("não foi possível inserir o membro", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		logger.Info("membros inseridos", slog.Int("count", cnt))
	case 2:
		cnt := 0
		for i := 0; i < n; i++ {
			if err := repo.CreateChannel(utils.GenerateRandomChannel(owner.ID)); err != nil {
				logger.Error("não foi possível inserir o canal", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		logger.Info("canais inseridos", slog.Int("count", cnt))
	case 3:
		channels, err := repo.GetAllChannels(owner.ID)
		if err != nil {
			logger.Error("não foi possível obter os canais", slog.String("error", err.Error()))
			return
		}
		members, err := repo.GetAllMembers(owner.ID)
		if err != nil {
			logger.Error("não foi possível obter os membros", slog.String("error", err.Error()))
			return
		}

		ideas, videos := 0, 0
		for _, ch := range channels {
			for i := 0; i < n; i++ {
				if err := repo.CreateIdea(utils.GenerateRandomIdea(ch)); err != nil {
					logger.Error("não foi possível inserir a ideia", slog.String("error", err.Error()))
				} else {
					ideas++
				}
				if err := repo.CreateVideo(utils.GenerateRandomVideo(ch, members)); err != nil {
					logger.Error("não foi possível inserir o vídeo", slog.String("error", err.Error()))
				} else {
					videos++
				}
			}
		}
		logger.Info("ideias e vídeos inseridos", slog.Int("ideas", ideas), slog.Int("videos", videos))
	case 4:
		if owner.Role != domain.RoleAdmin && owner.Role != domain.RoleOwner {
			logger.Error("papel de usuário desconhecido", slog.String("role", string(owner.Role)))
			return
		}
		if _, err := seed.SeedDemoData(repo, owner.ID, cfg.Seed.Member.Password, cfg.Email.MemberDomain); err != nil {
			logger.Error("não foi possível inserir os dados de demonstração", slog.String("error", err.Error()))
		}
	default:
		logger.Error("operação inválida")
	}
}
