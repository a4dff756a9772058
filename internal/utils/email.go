package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SendWelcomeEmail envoie l'email de bienvenue après inscription.
// Best effort : un échec SMTP ne doit jamais faire échouer l'inscription.
func SendWelcomeEmail(to, username string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP non configuré, email de bienvenue ignoré")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur CinéFil 🎬")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(username))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de bienvenue à", to)
	return client.DialAndSend(msg)
}

func welcomeHTML(username string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>Bienvenue %s 🎬</h2>
    <p>Votre compte CinéFil est prêt. Notez quelques films et nous vous
    proposerons des recommandations sur mesure.</p>
    <p>Bonnes séances !</p>
  </body>
</html>`, username)
}
