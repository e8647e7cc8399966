package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	telegram "guardian-epi/internal/api"
	app "guardian-epi/internal/application"
	"guardian-epi/internal/container"
	"guardian-epi/internal/infrastructure/storage"
)

func NewBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Inicia a interface Telegram de inspecao",
		Long: `Sobe o bot Telegram: operadores escolhem um perfil de inspecao e
enviam fotos para verificacao. Perfis cujo modelo nao esta disponivel sao
omitidos com um aviso.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.TelegramToken == "" {
				return errors.New("GUARDIAN_TELEGRAM_TOKEN e obrigatorio para o modo bot")
			}

			services := make(map[string]*telegram.ProfileServices)
			var containers []*container.Container
			defer func() {
				for _, c := range containers {
					if err := c.Close(); err != nil {
						log.Warn().Err(err).Msg("erro ao liberar o modelo")
					}
				}
			}()

			for name, profile := range cfg.Profiles {
				c, err := buildProfile(cfg, profile)
				if err != nil {
					log.Warn().Err(err).Str("profile", name).Msg("perfil indisponivel")
					continue
				}
				containers = append(containers, c)
				services[name] = &telegram.ProfileServices{Compliance: c.Compliance, Line: c.Line}
			}
			if len(services) == 0 {
				return errors.New("nenhum perfil disponivel: verifique os modelos")
			}

			operatorRepo := storage.NewMemoryOperatorRepository(cfg.Profile)
			operators := app.NewOperatorService(operatorRepo)

			bot, err := telegram.NewBot(cfg.TelegramToken, operators, services, log.Logger)
			if err != nil {
				return fmt.Errorf("criar bot: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Msg("bot em execucao")
			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
