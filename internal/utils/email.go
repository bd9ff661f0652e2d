package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends reservation confirmation emails over SMTP. A nil Mailer
// is valid and sends nothing, so email stays optional in development.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT,
// SMTP_USER, SMTP_PASS and SMTP_FROM. It returns nil when SMTP_HOST is
// unset.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// SendReservationConfirmed emails the customer their confirmation
// details. Errors are logged, not returned; a failed email must never
// fail the booking.
func (m *Mailer) SendReservationConfirmed(to, name, code, date, start, end, tableName string, partySize int) {
	if m == nil {
		return
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Reservation %s confirmed", code))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour reservation is confirmed.\n\nCode: %s\nDate: %s\nTime: %s to %s\nTable: %s\nParty size: %d\n\nSee you soon.",
		name, code, date, start, end, tableName, partySize))
	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("email: send to %s failed: %v", to, err)
	}
}
