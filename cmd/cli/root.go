package cli

import (
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"guardian-epi/config"
	"guardian-epi/internal/container"
	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
	"guardian-epi/internal/infrastructure/notify"
	"guardian-epi/internal/infrastructure/storage"
	"guardian-epi/internal/infrastructure/vision"
)

var (
	cfgFile     string
	profileName string
	debug       bool
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "guardian-epi",
		Short: "Inspecao de conformidade por visao computacional",
		Long: `Guardian EPI verifica, a partir de fotos ou de uma camera, se pessoas
usam os equipamentos de protecao exigidos e se objetos estranhos aparecem na
esteira de producao. Cada nao conformidade gera evidencia em disco, uma linha
no log de ocorrencias e um alerta opcional por email ou Telegram.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuracao (padrao: guardian.yaml)")
	root.PersistentFlags().StringVar(&profileName, "perfil", "", "perfil de inspecao: epi, uniforme ou esteira")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "logs de depuracao")

	root.AddCommand(
		NewVerificarCommand(),
		NewLoteCommand(),
		NewVigiarCommand(),
		NewEsteiraCommand(),
		NewRelatorioCommand(),
		NewBotCommand(),
	)

	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// buildPipeline assembles the pipeline for the selected profile. The
// returned cleanup releases the loaded model.
func buildPipeline() (*container.Container, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	profile, err := cfg.SelectedProfile(profileName)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := buildProfile(cfg, profile)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("erro ao liberar o modelo")
		}
	}
	return c, cfg, cleanup, nil
}

func buildProfile(cfg *config.Config, profile entity.InspectionProfile) (*container.Container, error) {
	classifier, err := vision.NewDNNClassifier(profile.ModelPath, profile.LabelsPath, profile.DefaultLabels, log.Logger)
	if err != nil {
		return nil, err
	}

	recorder, err := storage.NewFileRecorder(profile.LogsDir, profile.LogFileName, profile.EvidencePrefix, profile.Conveyor, log.Logger)
	if err != nil {
		classifier.Close()
		return nil, err
	}

	return container.New(profile, classifier, recorder, buildNotifier(cfg, profile), nil, log.Logger), nil
}

// buildNotifier assembles the configured alert channels. Returns nil
// when none are configured; channel setup failures are logged, not
// fatal, since alerts are best effort.
func buildNotifier(cfg *config.Config, profile entity.InspectionProfile) port.Notifier {
	var channels notify.Multi

	if cfg.ResendAPIKey != "" && cfg.AlertEmailTo != "" {
		email := notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.AlertEmailFrom, cfg.AlertEmailTo, profile.System, log.Logger)
		channels = append(channels, notify.WithRetry(email, cfg.NotifyAttempts))
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			log.Warn().Err(err).Msg("canal telegram indisponivel")
		} else {
			tg := notify.NewTelegramNotifier(api, cfg.TelegramChatID, log.Logger)
			channels = append(channels, notify.WithRetry(tg, cfg.NotifyAttempts))
		}
	}

	if len(channels) == 0 {
		return nil
	}
	return channels
}

func lineStatus(c *container.Container) entity.LineState {
	if c.Line != nil {
		return c.Line.Line().State()
	}
	return entity.LineRunning
}
