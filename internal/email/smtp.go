package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from"`
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *smtpSender) SendBookingConfirmation(_ context.Context, to, name string, appointment *model.Appointment) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment is confirmed for %s until %s.\n",
		name,
		appointment.StartTime.Format("Mon, 02 Jan 2006 15:04"),
		appointment.EndTime.Format("15:04"),
	)
	return s.send(to, "Appointment confirmed", body)
}

func (s *smtpSender) SendReminder(_ context.Context, reminder *model.AppointmentReminder) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder for your appointment with Dr. %s at %s.\n",
		reminder.PatientName,
		reminder.DoctorName,
		reminder.StartTime.Format("Mon, 02 Jan 2006 15:04"),
	)
	return s.send(reminder.PatientEmail, "Appointment reminder", body)
}
