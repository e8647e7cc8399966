package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "guardian-epi/internal/application"
	"guardian-epi/internal/domain/entity"
)

const (
	msgStart = `👋 Guardian EPI — inspecao de conformidade por foto.

📸 Envie uma foto e eu verifico a conformidade com o perfil ativo.

📋 Comandos:
/perfil <nome> — escolher perfil de inspecao
/relatorio — resumo dos contadores
/religar — reiniciar linha parada (esteira)
/help — ajuda`

	msgHelp = `ℹ️ Como usar:

1️⃣ Escolha o perfil com /perfil epi, /perfil uniforme ou /perfil esteira
2️⃣ Envie uma foto
3️⃣ Receba o veredito com classe e confianca

📋 Comandos:
/perfil <nome> — trocar perfil
/relatorio — contadores do perfil ativo
/religar — reiniciar linha parada`

	msgSendPhoto       = "📸 Envie uma foto para verificar a conformidade."
	msgUnknownCommand  = "❓ Comando desconhecido. Use /help para ajuda."
	msgProcessing      = "⏳ Processando imagem..."
	msgProcessingError = "⚠️ Nao foi possivel processar a imagem. Tente outra foto."
)

// ProfileServices groups the pipeline behind one inspection profile.
type ProfileServices struct {
	Compliance *app.ComplianceService
	Line       *app.LineService // nil for entry-gate profiles
}

// Bot is the Telegram inspection surface: operators pick a profile and
// send photos, the bot answers with the verdict.
type Bot struct {
	api       *tgbotapi.BotAPI
	operators *app.OperatorService
	services  map[string]*ProfileServices
	log       zerolog.Logger
}

// NewBot authorizes the bot and binds it to the per-profile services.
func NewBot(token string, operators *app.OperatorService, services map[string]*ProfileServices, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("bot autorizado")

	return &Bot{
		api:       api,
		operators: operators,
		services:  services,
		log:       log,
	}, nil
}

// Run blocks on the update loop until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	operator, err := b.operators.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Msg("erro ao carregar operador")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, operator)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, operator)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, operator *entity.Operator) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "perfil":
		b.handleProfile(ctx, msg, operator)

	case "relatorio":
		b.handleReport(msg.Chat.ID, operator)

	case "religar":
		b.handleRestart(msg.Chat.ID, operator)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) handleProfile(ctx context.Context, msg *tgbotapi.Message, operator *entity.Operator) {
	name := strings.TrimSpace(msg.CommandArguments())
	if _, ok := b.services[name]; !ok {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"Perfil desconhecido. Disponiveis: %s", strings.Join(b.profileNames(), ", ")))
		return
	}

	if _, err := b.operators.SelectProfile(ctx, operator.ID, operator.ChatID, name); err != nil {
		b.log.Error().Err(err).Msg("erro ao trocar perfil")
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✓ Perfil ativo: %s", name))
}

func (b *Bot) handleReport(chatID int64, operator *entity.Operator) {
	svc, ok := b.services[operator.Profile]
	if !ok {
		b.sendMessage(chatID, "Nenhum perfil ativo. Use /perfil.")
		return
	}

	counters := svc.Compliance.Counters()
	status := entity.LineRunning
	if svc.Line != nil {
		status = svc.Line.Line().State()
	}
	b.sendMessage(chatID, fmt.Sprintf(
		"📊 Perfil %s\nDeteccoes: %d\nViolacoes: %d\nParadas: %d\nIgnoradas: %d\nLinha: %s",
		operator.Profile, counters.Detections, counters.Violations,
		counters.Stoppages, counters.Skipped, status))
}

func (b *Bot) handleRestart(chatID int64, operator *entity.Operator) {
	svc, ok := b.services[operator.Profile]
	if !ok || svc.Line == nil {
		b.sendMessage(chatID, "O perfil ativo nao controla uma linha.")
		return
	}

	if svc.Line.Restart() {
		b.sendMessage(chatID, "✓ Linha de producao reiniciada.")
	} else {
		b.sendMessage(chatID, "A linha ja esta em operacao.")
	}
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, operator *entity.Operator) {
	svc, ok := b.services[operator.Profile]
	if !ok {
		b.sendMessage(msg.Chat.ID, "Nenhum perfil ativo. Use /perfil.")
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Highest resolution variant
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.Error().Err(err).Msg("erro ao baixar foto")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	var out *app.CheckOutput
	if svc.Line != nil {
		out, err = svc.Line.ProcessFrame(ctx, imageData)
	} else {
		out, err = svc.Compliance.CheckImage(ctx, imageData)
	}
	if err != nil {
		svc.Compliance.Skip()
		b.log.Error().Err(err).Msg("erro na inspecao")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	if out == nil {
		b.sendMessage(msg.Chat.ID, "🛑 Linha parada. Use /religar apos a inspecao.")
		return
	}

	b.sendMessage(msg.Chat.ID, b.verdictMessage(svc, out))
}

func (b *Bot) verdictMessage(svc *ProfileServices, out *app.CheckOutput) string {
	base := fmt.Sprintf("Classe: %s (%s)", out.Result.Label, out.Result.ConfidencePercent())

	if out.Verdict.Compliant {
		if svc.Line == nil {
			return fmt.Sprintf("✅ %s\n%s", entity.AccessFor(out.Verdict), base)
		}
		return "✅ Conforme\n" + base
	}

	text := fmt.Sprintf("⚠️ Nao conforme\n%s\nMotivo: %s", base, out.Verdict.Reason)
	if svc.Line == nil {
		text = fmt.Sprintf("⛔ %s\n%s", entity.AccessFor(out.Verdict), text)
	} else {
		text += "\n🛑 Linha de producao parada. Use /religar apos a inspecao."
	}
	return text
}

func (b *Bot) profileNames() []string {
	names := make([]string, 0, len(b.services))
	for name := range b.services {
		names = append(names, name)
	}
	return names
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Msg("erro ao enviar mensagem")
	}
}
