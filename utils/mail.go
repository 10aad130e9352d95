package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"github.com/Kariqs/prostore-api/models"
)

type EmailData struct {
	Name     string
	Message  string
	Order    *models.Order
	OrderURL string
}

type MailConfig struct {
	Address      string
	Host         string
	From         string
	Password     string
	TemplatesDir string
	ServerURL    string
}

type Mailer struct {
	cfg      MailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Address != "" && m.cfg.From != ""
}

// SendOrderConfirmation mails the receipt. It does nothing when no SMTP
// server is configured.
func (m *Mailer) SendOrderConfirmation(user *models.User, order *models.Order) error {
	if !m.Enabled() {
		return nil
	}
	data := EmailData{
		Name:     user.Name,
		Message:  "Thank you for your order. Here is your receipt.",
		Order:    order,
		OrderURL: fmt.Sprintf("%s/order/%d", m.cfg.ServerURL, order.ID),
	}
	subject := fmt.Sprintf("Order Confirmation %d", order.ID)
	return m.SendEmail(user.Email, subject, data, filepath.Join(m.cfg.TemplatesDir, "order_confirmation.html"))
}

func (m *Mailer) SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	err = m.sendMail(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
