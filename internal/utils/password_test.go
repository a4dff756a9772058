package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("erreur de hash: %v", err)
	}
	if !IsArgon2Hash(hash) {
		t.Fatalf("format inattendu: %s", hash)
	}

	ok, err := VerifyPassword("motdepasse123", hash)
	if err != nil || !ok {
		t.Fatalf("le bon mot de passe devrait passer (ok=%v, err=%v)", ok, err)
	}

	ok, err = VerifyPassword("mauvais", hash)
	if err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if ok {
		t.Fatal("un mauvais mot de passe ne doit pas passer")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, _ := HashPassword("pareil")
	h2, _ := HashPassword("pareil")
	if h1 == h2 {
		t.Fatal("deux hash du même mot de passe devraient différer (salt)")
	}
}

func TestVerifyLegacyBcryptHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("ancien"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("erreur bcrypt: %v", err)
	}
	if !IsBcryptHash(string(legacy)) {
		t.Fatalf("hash bcrypt non reconnu: %s", legacy)
	}

	ok, err := VerifyPassword("ancien", string(legacy))
	if err != nil || !ok {
		t.Fatalf("le hash bcrypt migré devrait passer (ok=%v, err=%v)", ok, err)
	}
	ok, _ = VerifyPassword("faux", string(legacy))
	if ok {
		t.Fatal("un mauvais mot de passe ne doit pas passer sur bcrypt")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "pas-un-hash"); err == nil {
		t.Fatal("un hash malformé devrait renvoyer une erreur")
	}
}
