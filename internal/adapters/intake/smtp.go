package intake

import (
	"bytes"
	"context"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// SMTPIntake accepts forwarded emails over SMTP and feeds them into the
// pipeline. Messages are accepted and consumed, never relayed; the
// verdict reaches the user through the outcome collaborators.
type SMTPIntake struct {
	listenAddr string
	pipeline   *core.PipelineService
	logger     *zap.Logger
	server     *smtp.Server
}

// NewSMTPIntake creates the SMTP intake
func NewSMTPIntake(listenAddr string, pipeline *core.PipelineService, logger *zap.Logger) *SMTPIntake {
	return &SMTPIntake{
		listenAddr: listenAddr,
		pipeline:   pipeline,
		logger:     logger,
	}
}

// Start starts the SMTP server
func (f *SMTPIntake) Start() error {
	f.server = smtp.NewServer(&smtpBackend{intake: f})
	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP intake starting", zap.String("address", f.listenAddr))
	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()
	return nil
}

// Stop stops the SMTP server
func (f *SMTPIntake) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{intake: b.intake}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake *SMTPIntake
	sender string
}

func (s *smtpSession) Reset() {
	s.sender = ""
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	return nil
}

// Data parses the message and hands it to the pipeline as a synthetic
// node. The envelope sender and the headers populate the structured
// attributes, so extraction takes the same path as snapshot nodes.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.intake.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.intake.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	sender := msg.Header.Get("From")
	if sender == "" {
		sender = s.sender
	}

	node := &core.Node{
		Text: textContent,
		Attrs: map[string]string{
			"data-subject":      msg.Header.Get("Subject"),
			"data-sender-email": sender,
			"data-message-id":   strings.Trim(msg.Header.Get("Message-Id"), "<>"),
		},
		SourceURL: "smtp://" + s.intake.listenAddr,
	}

	s.intake.logger.Debug("Forwarded email received",
		zap.String("sender", sender),
		zap.Int("bytes", len(rawData)))

	s.intake.pipeline.ProcessAsync(context.Background(), node)
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
