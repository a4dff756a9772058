package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/database"
	"cinefil_back_end/internal/models"
)

// ErrEmailTaken : un compte existe déjà pour cet email.
var ErrEmailTaken = errors.New("email déjà utilisé")

type UserStore struct {
	Session func() (*gocql.Session, error)
	Retry   RetryPolicy
}

func NewUserStore() *UserStore {
	return &UserStore{
		Session: database.GetUsersSession,
		Retry:   DefaultRetryPolicy(),
	}
}

// Create insère l'utilisateur. La réservation de l'email passe par un
// INSERT IF NOT EXISTS sur users_by_email (transaction légère) pour
// écarter les inscriptions concurrentes sur le même email.
func (s *UserStore) Create(ctx context.Context, user models.User) error {
	session, err := s.Session()
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	var applied bool
	err = s.Retry.Do(func() error {
		var err error
		applied, err = session.Query(`INSERT INTO users_by_email (email, user_id)
			VALUES (?, ?) IF NOT EXISTS`, email, user.ID).
			WithContext(ctx).ScanCAS(new(string), new(string))
		return err
	})
	if err != nil {
		return err
	}
	if !applied {
		return ErrEmailTaken
	}

	return s.Retry.Do(func() error {
		return session.Query(`INSERT INTO users (user_id, email, password, username, provider, provider_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.ID, email, user.Password, user.Username, user.Provider, user.ProviderID, time.Now()).
			WithContext(ctx).Exec()
	})
}

// ByEmail retourne l'utilisateur rattaché à un email, ErrNotFound sinon.
func (s *UserStore) ByEmail(ctx context.Context, email string) (models.User, error) {
	session, err := s.Session()
	if err != nil {
		return models.User{}, err
	}

	var userID string
	err = s.Retry.Do(func() error {
		return session.Query(database.StmtUserByEmail,
			strings.ToLower(strings.TrimSpace(email))).
			WithContext(ctx).Scan(&userID)
	})
	if errors.Is(err, gocql.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return s.ByID(ctx, userID)
}

// ByID retourne l'utilisateur par identifiant, ErrNotFound sinon.
func (s *UserStore) ByID(ctx context.Context, userID string) (models.User, error) {
	session, err := s.Session()
	if err != nil {
		return models.User{}, err
	}

	user := models.User{ID: userID}
	err = s.Retry.Do(func() error {
		return session.Query(database.StmtUserByID, userID).WithContext(ctx).
			Scan(&user.Email, &user.Password, &user.Username, &user.Provider, &user.ProviderID)
	})
	if errors.Is(err, gocql.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// NewUserID génère l'identifiant d'un nouvel utilisateur.
func NewUserID() string {
	return uuid.NewString()
}
