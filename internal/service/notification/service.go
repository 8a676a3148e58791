package notification

import (
	"log/slog"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/email"
)

// Notifier sends best-effort notifications. Every method returns
// immediately; delivery happens in the background and a failure is
// logged, never surfaced to the originating workflow.
type Notifier interface {
	InterviewInvitation(to, candidateName, jobTitle, companyName string, scheduledAt time.Time, duration int, meetingURL string)
	InterviewResponse(to, candidateName, jobTitle, newStatus string, message *string)
	RescheduleNotification(to, candidateName, jobTitle, companyName string, oldScheduledAt, newScheduledAt time.Time, meetingURL string)
	ApplicationDecision(to, candidateName, jobTitle, companyName, status string, notes *string)
	ContractDecision(to, recruiterName, status string, adminNotes *string)
	ResignationDecision(to, candidateName, jobTitle, status string, notes *string)
}

type notifierImpl struct {
	email email.EmailService
}

func NewNotifier(emailService email.EmailService) Notifier {
	return &notifierImpl{email: emailService}
}

func (n *notifierImpl) dispatch(kind string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			slog.Error("Notification delivery failed", "kind", kind, "error", err)
		}
	}()
}

func (n *notifierImpl) InterviewInvitation(to, candidateName, jobTitle, companyName string, scheduledAt time.Time, duration int, meetingURL string) {
	n.dispatch("interview_invitation", func() error {
		return n.email.SendInterviewInvitation(to, candidateName, jobTitle, companyName, scheduledAt, duration, meetingURL)
	})
}

func (n *notifierImpl) InterviewResponse(to, candidateName, jobTitle, newStatus string, message *string) {
	n.dispatch("interview_response", func() error {
		return n.email.SendInterviewResponse(to, candidateName, jobTitle, newStatus, message)
	})
}

func (n *notifierImpl) RescheduleNotification(to, candidateName, jobTitle, companyName string, oldScheduledAt, newScheduledAt time.Time, meetingURL string) {
	n.dispatch("reschedule_notification", func() error {
		return n.email.SendRescheduleNotification(to, candidateName, jobTitle, companyName, oldScheduledAt, newScheduledAt, meetingURL)
	})
}

func (n *notifierImpl) ApplicationDecision(to, candidateName, jobTitle, companyName, status string, notes *string) {
	n.dispatch("application_decision", func() error {
		return n.email.SendApplicationDecision(to, candidateName, jobTitle, companyName, status, notes)
	})
}

func (n *notifierImpl) ContractDecision(to, recruiterName, status string, adminNotes *string) {
	n.dispatch("contract_decision", func() error {
		return n.email.SendContractDecision(to, recruiterName, status, adminNotes)
	})
}

func (n *notifierImpl) ResignationDecision(to, candidateName, jobTitle, status string, notes *string) {
	n.dispatch("resignation_decision", func() error {
		return n.email.SendResignationDecision(to, candidateName, jobTitle, status, notes)
	})
}
