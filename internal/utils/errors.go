package utils

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classe les échecs de l'API (taxonomie unique, mappée sur les
// statuts HTTP par RespondError).
type Kind int

const (
	KindValidation Kind = iota // entrée manquante ou hors bornes → 400
	KindAuth                   // token absent/invalide/expiré → 401
	KindNotFound               // ressource ou lookup amont vide → 404
	KindConflict               // doublon (import, inscription) → 400
	KindUpstream               // API externe ou store en échec → 500
)

// AppError porte le message exposé au client et la cause interne
// (loggée, jamais renvoyée).
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Auth(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Upstream(message string, cause error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Cause: cause}
}

func statusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError convertit n'importe quelle erreur en corps JSON
// {"error": ...}. La cause originale est loggée, pas exposée.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Upstream("Erreur serveur", err)
	}

	if appErr.Cause != nil {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Cause)
	}

	c.JSON(statusOf(appErr.Kind), gin.H{"error": appErr.Message})
}
