package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// jakartaDateFormat renders timestamps the way the marketplace shows
// them to users (WIB).
const jakartaDateFormat = "Monday, 2 January 2006 15:04 WIB"

// EmailService defines the interface for sending emails
type EmailService interface {
	SendInterviewInvitation(to, candidateName, jobTitle, companyName string, scheduledAt time.Time, duration int, meetingURL string) error
	SendInterviewResponse(to, candidateName, jobTitle, newStatus string, message *string) error
	SendRescheduleNotification(to, candidateName, jobTitle, companyName string, oldScheduledAt, newScheduledAt time.Time, meetingURL string) error
	SendApplicationDecision(to, candidateName, jobTitle, companyName, status string, notes *string) error
	SendContractDecision(to, recruiterName, status string, adminNotes *string) error
	SendResignationDecision(to, candidateName, jobTitle, status string, notes *string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	location  *time.Location
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		location:  loc,
	}, nil
}

func (s *emailServiceImpl) formatSchedule(t time.Time) string {
	return t.In(s.location).Format(jakartaDateFormat)
}

type interviewInvitationData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	ScheduledAt   string
	Duration      int
	MeetingURL    string
}

// SendInterviewInvitation notifies a candidate of a scheduled interview
func (s *emailServiceImpl) SendInterviewInvitation(to, candidateName, jobTitle, companyName string, scheduledAt time.Time, duration int, meetingURL string) error {
	data := interviewInvitationData{
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		CompanyName:   companyName,
		ScheduledAt:   s.formatSchedule(scheduledAt),
		Duration:      duration,
		MeetingURL:    meetingURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "interview_invitation.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Undangan Interview - %s di %s", jobTitle, companyName), body.String())
}

type interviewResponseData struct {
	CandidateName string
	JobTitle      string
	NewStatus     string
	Message       string
}

// SendInterviewResponse notifies the recruiter of a candidate response
func (s *emailServiceImpl) SendInterviewResponse(to, candidateName, jobTitle, newStatus string, message *string) error {
	data := interviewResponseData{
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		NewStatus:     newStatus,
	}
	if message != nil {
		data.Message = *message
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "interview_response.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Respon Interview dari %s - %s", candidateName, jobTitle), body.String())
}

type rescheduleNotificationData struct {
	CandidateName  string
	JobTitle       string
	CompanyName    string
	OldScheduledAt string
	NewScheduledAt string
	MeetingURL     string
}

// SendRescheduleNotification tells a candidate the slot moved
func (s *emailServiceImpl) SendRescheduleNotification(to, candidateName, jobTitle, companyName string, oldScheduledAt, newScheduledAt time.Time, meetingURL string) error {
	data := rescheduleNotificationData{
		CandidateName:  candidateName,
		JobTitle:       jobTitle,
		CompanyName:    companyName,
		OldScheduledAt: s.formatSchedule(oldScheduledAt),
		NewScheduledAt: s.formatSchedule(newScheduledAt),
		MeetingURL:     meetingURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "reschedule_notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Jadwal Interview Berubah: %s - %s", jobTitle, companyName), body.String())
}

type applicationDecisionData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	Accepted      bool
	Notes         string
}

// SendApplicationDecision notifies a candidate of accept/reject
func (s *emailServiceImpl) SendApplicationDecision(to, candidateName, jobTitle, companyName, status string, notes *string) error {
	data := applicationDecisionData{
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		CompanyName:   companyName,
		Accepted:      status == "ACCEPTED",
	}
	if notes != nil {
		data.Notes = *notes
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "application_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Hasil Lamaran - %s di %s", jobTitle, companyName)
	return s.sendHTML(to, subject, body.String())
}

type contractDecisionData struct {
	RecruiterName string
	Approved      bool
	AdminNotes    string
}

// SendContractDecision notifies the recruiter of the admin decision
func (s *emailServiceImpl) SendContractDecision(to, recruiterName, status string, adminNotes *string) error {
	data := contractDecisionData{
		RecruiterName: recruiterName,
		Approved:      status == "APPROVED",
	}
	if adminNotes != nil {
		data.AdminNotes = *adminNotes
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "contract_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Hasil Pendaftaran Kontrak Kerja", body.String())
}

type resignationDecisionData struct {
	CandidateName string
	JobTitle      string
	Approved      bool
	Notes         string
}

// SendResignationDecision notifies the jobseeker of approve/reject
func (s *emailServiceImpl) SendResignationDecision(to, candidateName, jobTitle, status string, notes *string) error {
	data := resignationDecisionData{
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		Approved:      status == "APPROVED",
	}
	if notes != nil {
		data.Notes = *notes
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "resignation_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Hasil Pengajuan Resign - %s", jobTitle), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
