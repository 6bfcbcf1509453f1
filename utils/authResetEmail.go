package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail delivers a password-reset code to the operator's
// mailbox through the configured SMTP relay.
func SendResetCodeEmail(email, code string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Código de recuperación de contraseña")

	m.SetBody("text/plain", "Su código de recuperación es: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Código de recuperación</title>
	</head>
	<body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 20px auto; padding: 20px;">
			<h1>Código de recuperación de contraseña</h1>
			<p>Su código de recuperación es:</p>
			<p style="font-weight: bold; color: #007bff;">` + code + `</p>
			<p>Si usted no solicitó un cambio de contraseña, ignore este correo.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
