package database

import (
	"strings"
	"testing"
)

// Sans keyspace configuré, le warmup doit laisser le serveur démarrer
// (idempotent, pas de panic) : Scylla peut arriver après le process.
func TestInitPreparedStatementsSansSession(t *testing.T) {
	t.Setenv("SCYLLA_KS_USERS_KEYSPACE", "")

	InitPreparedStatements()
	InitPreparedStatements()
}

// Les stores lient chaque statement avec exactement un paramètre ;
// les constantes doivent rester alignées sur cet usage.
func TestUserStatementPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		stmt string
	}{
		{"user par email", StmtUserByEmail},
		{"user par id", StmtUserByID},
	}
	for _, tt := range tests {
		if n := strings.Count(tt.stmt, "?"); n != 1 {
			t.Errorf("%s: %d placeholders, attendu 1", tt.name, n)
		}
	}
}
