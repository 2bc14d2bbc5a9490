package mailer

import (
	"fmt"

	"eventhub/internal/config"
	"eventhub/internal/models"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. Every send is
// fire-and-forget: a failure is logged and the triggering request is
// never rolled back because of it.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
	logger  zerolog.Logger
	enabled bool
}

func New(cfg config.Config, logger zerolog.Logger) *Mailer {
	m := &Mailer{
		from:    cfg.SMTPFrom,
		baseURL: cfg.FrontendURL,
		logger:  logger,
	}
	if cfg.SMTPHost == "" {
		logger.Warn().Msg("SMTP_HOST not set, outgoing email disabled")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	m.enabled = true
	return m
}

func (m *Mailer) send(msg *gomail.Message, kind string) {
	if !m.enabled {
		return
	}
	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			m.logger.Error().Err(err).Str("kind", kind).Msg("Failed to send email")
		}
	}()
}

func (m *Mailer) SendTicketConfirmation(to string, event *models.Event, ticket *models.Ticket) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your ticket for %s", event.Title))
	msg.SetBody("text/html", fmt.Sprintf(
		`<h2>You're in!</h2>
<p><b>%s</b><br>%s, %s &ndash; %s<br>%s</p>
<p>Ticket code: <b>%s</b></p>
<p>Show this QR code at the door:</p>
<img src="%s" alt="ticket qr code">
<p><a href="%s/my-tickets">View your tickets</a></p>`,
		event.Title, event.Date, event.StartTime, event.EndTime, event.Location,
		ticket.TicketCode, ticket.QRCodeURL, m.baseURL))
	m.send(msg, "ticket_confirmation")
}

func (m *Mailer) SendInvitationAccepted(to string, event *models.Event) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Speaking confirmed: %s", event.Title))
	msg.SetBody("text/html", fmt.Sprintf(
		`<h2>See you there</h2>
<p>You are confirmed as a speaker for <b>%s</b>.</p>
<p>%s, %s &ndash; %s<br>%s</p>
<p><a href="%s/events/%d">Event details</a></p>`,
		event.Title, event.Date, event.StartTime, event.EndTime, event.Location,
		m.baseURL, event.ID))
	m.send(msg, "invitation_accepted")
}
