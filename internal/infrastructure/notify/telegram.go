package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// TelegramNotifier posts the evidence photo to a supervision chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

// NewTelegramNotifier reuses an authorized bot client.
func NewTelegramNotifier(api *tgbotapi.BotAPI, chatID int64, log zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID, log: log}
}

// Notify sends the evidence photo with a caption describing the
// incident.
func (n *TelegramNotifier) Notify(ctx context.Context, incident *entity.IncidentRecord) error {
	_ = ctx

	photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FilePath(incident.ImagePath))
	photo.Caption = fmt.Sprintf("⚠️ %s\nClasse: %s (%.1f%%)\n%s",
		incident.Reason, incident.Label, incident.Confidence*100,
		incident.Timestamp.Format("02/01/2006 15:04:05"))

	if _, err := n.api.Send(photo); err != nil {
		return &entity.NotificationError{Channel: "telegram", Err: err}
	}

	n.log.Info().Int64("chat", n.chatID).Msg("alerta enviado por telegram")
	return nil
}

var _ port.Notifier = (*TelegramNotifier)(nil)
