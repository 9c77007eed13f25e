package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"golang.org/x/time/rate"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string

	// SendsPerSecond caps outbound volume so a burst of bookings cannot
	// trip the provider's sending limits. Zero means 1/s.
	SendsPerSecond float64
}

// EmailService handles email sending
type EmailService struct {
	config  EmailConfig
	limiter *rate.Limiter
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	perSecond := config.SendsPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &EmailService{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 3),
	}
}

// AppointmentEmailData carries the fields rendered into appointment emails.
type AppointmentEmailData struct {
	PatientName string
	DoctorName  string
	Date        string
	Time        string
	Reason      string
}

// SendAppointmentConfirmation sends the booking confirmation email
func (s *EmailService) SendAppointmentConfirmation(ctx context.Context, toEmail string, data AppointmentEmailData) error {
	htmlContent, err := s.renderAppointmentEmail(confirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Your Appointment is Confirmed - DentWise"
	return s.sendEmail(ctx, toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// SendAppointmentCancellation sends the cancellation notice
func (s *EmailService) SendAppointmentCancellation(ctx context.Context, toEmail string, data AppointmentEmailData) error {
	htmlContent, err := s.renderAppointmentEmail(cancellationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Your Appointment Has Been Cancelled - DentWise"
	return s.sendEmail(ctx, toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// sendEmail sends an email using SMTP, waiting on the outbound rate limit
func (s *EmailService) sendEmail(ctx context.Context, to string, message []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("email send cancelled: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) renderAppointmentEmail(tmplText string, data AppointmentEmailData) (string, error) {
	tmpl, err := template.New("appointment").Parse(tmplText)
	if err != nil {
		return "", err
	}

	payload := struct {
		AppointmentEmailData
		AppName string
	}{
		AppointmentEmailData: data,
		AppName:              "DentWise",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// confirmationTemplate is the HTML template for booking confirmations
const confirmationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Appointment Confirmed</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #0ea5e9 0%, #2563eb 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Your Appointment is Confirmed</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.PatientName}},
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Your appointment with <strong>Dr. {{.DoctorName}}</strong> has been confirmed.
                            </p>
                            <table role="presentation" style="width: 100%; background-color: #f8fafc; border-radius: 8px; margin: 0 0 30px 0;">
                                <tr>
                                    <td style="padding: 20px 24px;">
                                        <p style="color: #1a1a2e; font-size: 16px; margin: 0 0 8px 0;"><strong>Date:</strong> {{.Date}}</p>
                                        <p style="color: #1a1a2e; font-size: 16px; margin: 0 0 8px 0;"><strong>Time:</strong> {{.Time}}</p>
                                        {{if .Reason}}<p style="color: #1a1a2e; font-size: 16px; margin: 0;"><strong>Reason:</strong> {{.Reason}}</p>{{end}}
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                Need to make a change? You can cancel or rebook from your dashboard at any time before the appointment.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.AppName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.AppName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// cancellationTemplate is the HTML template for cancellation notices
const cancellationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Appointment Cancelled</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #64748b 0%, #334155 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Your Appointment Has Been Cancelled</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.PatientName}},
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Your appointment with <strong>Dr. {{.DoctorName}}</strong> on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong> has been cancelled.
                            </p>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                If this wasn't you, or you'd like to book a new time, visit your dashboard to schedule another appointment.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.AppName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.AppName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
