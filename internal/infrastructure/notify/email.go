package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// EmailNotifier alerts a supervisor by email with the evidence image
// attached.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
	system string
	log    zerolog.Logger
}

// NewEmailNotifier builds a notifier on the Resend API.
func NewEmailNotifier(apiKey, from, to, system string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		system: system,
		log:    log,
	}
}

// Notify sends the alert email. A missing evidence file only drops the
// attachment; the alert still goes out.
func (n *EmailNotifier) Notify(ctx context.Context, incident *entity.IncidentRecord) error {
	body := fmt.Sprintf(
		"Nao conformidade detectada em %s.\n\n"+
			"Motivo: %s\n"+
			"Classe: %s\n"+
			"Confianca: %.1f%%\n"+
			"Evidencia: %s\n\n"+
			"%s",
		incident.Timestamp.Format("02/01/2006 15:04:05"),
		incident.Reason,
		incident.Label,
		incident.Confidence*100,
		incident.ImagePath,
		n.system,
	)

	req := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: "ALERTA SEGURANCA: " + incident.Reason,
		Text:    body,
	}

	if data, err := os.ReadFile(incident.ImagePath); err == nil {
		req.Attachments = []*resend.Attachment{{
			Filename: filepath.Base(incident.ImagePath),
			Content:  data,
		}}
	} else {
		n.log.Warn().Err(err).Str("image", incident.ImagePath).
			Msg("evidencia indisponivel para anexo, enviando sem imagem")
	}

	if _, err := n.client.Emails.SendWithContext(ctx, req); err != nil {
		return &entity.NotificationError{Channel: "email", Err: err}
	}

	n.log.Info().Str("to", n.to).Msg("alerta enviado por email")
	return nil
}

var _ port.Notifier = (*EmailNotifier)(nil)
