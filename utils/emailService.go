package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping email:", subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4C7DD0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Learning Platform</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because you have an account on the learning platform.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendEnrollmentEmail confirms a new or reactivated enrollment
func SendEnrollmentEmail(email, name, courseName, batchName string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your enrollment is confirmed.</p>
		<div class="info-box">
			<strong>Course:</strong> %s<br>
			<strong>Batch:</strong> %s
		</div>
		<p>You now have access to the full course curriculum.</p>`, name, courseName, batchName)

	return SendEmail([]string{email}, "Enrollment confirmed: "+courseName, getEmailTemplate("Enrollment Confirmed", body))
}

// SendSessionReminderEmail reminds an enrolled user of an upcoming live session
func SendSessionReminderEmail(email, name, sessionTitle string, scheduledAt time.Time) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have a live session coming up.</p>
		<div class="info-box">
			<strong>Session:</strong> %s<br>
			<strong>Starts:</strong> %s
		</div>`, name, sessionTitle, scheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"))

	return SendEmail([]string{email}, "Reminder: "+sessionTitle, getEmailTemplate("Upcoming Live Session", body))
}
