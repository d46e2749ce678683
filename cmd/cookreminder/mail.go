// https://github.com/sendgrid/sendgrid-go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendClient interface {
	Send(message *mail.SGMailV3) (*rest.Response, error)
}

type mailer struct {
	apiKey string
	from   string
	to     string
	dryRun bool

	// client overrides the SendGrid client in tests
	client sendClient
}

func (m *mailer) send(ctx context.Context, subject, htmlBody string) error {
	if m.dryRun {
		fmt.Println(htmlBody)
		slog.InfoContext(ctx, "dry run, mail not sent", "subject", subject)
		return nil
	}

	if m.apiKey == "" || m.from == "" || m.to == "" {
		return errors.New("mail not configured: set SENDGRID_API_KEY, FROM_EMAIL and TO_EMAIL")
	}

	from := mail.NewEmail("Cook Reminder", m.from)
	to := mail.NewEmail("", m.to)
	plainText := "今日菜谱已生成，请使用支持 HTML 的邮件客户端查看。"
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	client := m.client
	if client == nil {
		client = sendgrid.NewSendClient(m.apiKey)
	}
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("mail rejected with status %d: %s", response.StatusCode, response.Body)
	}
	slog.InfoContext(ctx, "mail sent", "subject", subject, "status", response.StatusCode)
	return nil
}
