package services

import (
	"context"
	"fmt"
	"html"
	"log"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

// Notifier fans out fire-and-forget notifications about lifecycle events.
// Every channel is optional; failures are logged and never reach the caller.
type Notifier struct {
	email  EmailService
	tg     *TelegramService
	admins repositories.AdminRepository
}

func NewNotifier(email EmailService, tg *TelegramService, admins repositories.AdminRepository) *Notifier {
	return &Notifier{email: email, tg: tg, admins: admins}
}

// PublicSubmissionReceived mails the admin contact directory and pings the
// telegram chat. Runs in the background; the submit request never waits.
func (n *Notifier) PublicSubmissionReceived(task *models.Task) {
	if n == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if n.email != nil && n.admins != nil {
			contacts, err := n.admins.FindAll(ctx)
			if err != nil {
				log.Printf("[notify][submission][warn] load admin contacts: %v", err)
			} else {
				for _, a := range contacts {
					if err := n.email.SendNewSubmissionEmail(a.Email, task); err != nil {
						log.Printf("[notify][submission][warn] email %s: %v", a.Email, err)
					}
				}
			}
		}
		if err := n.tg.Send(fmt.Sprintf(
			"📥 New public request\n• <b>%s</b>\n• Area: %s",
			html.EscapeString(task.Title), html.EscapeString(task.Area))); err != nil {
			log.Printf("[notify][submission][warn] telegram: %v", err)
		}
	}()
}

// StatusChanged pings the telegram chat about a transition.
func (n *Notifier) StatusChanged(task *models.Task) {
	if n == nil {
		return
	}
	go func() {
		if err := n.tg.Send(fmt.Sprintf(
			"🔁 <b>%s</b> → <code>%s</code>",
			html.EscapeString(task.Title), string(task.Status))); err != nil {
			log.Printf("[notify][status][warn] telegram: %v", err)
		}
	}()
}
