package database

import (
	"log"
	"sync"
)

// Requêtes du chemin d'authentification (les plus sollicitées : chaque
// requête authentifiée touche users, chaque login touche users_by_email).
// Les stores construisent une Query neuve à chaque appel — un
// *gocql.Query partagé est muté par Bind, interdit sous concurrence.
// gocql prépare et met en cache les statements par texte de requête.
const (
	StmtUserByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"
	StmtUserByID    = `SELECT email, password, username, provider, provider_id
		FROM users WHERE user_id = ?`
)

var warmupOnce sync.Once

// InitPreparedStatements paie le round-trip de préparation au démarrage
// plutôt qu'au premier login.
func InitPreparedStatements() {
	warmupOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		for _, stmt := range []string{StmtUserByEmail, StmtUserByID} {
			if err := session.Query(stmt, "").Iter().Close(); err != nil {
				log.Printf("⚠️ Préparation de %q: %v", stmt, err)
			}
		}

		log.Println("✅ Prepared statements initialisés")
	})
}
