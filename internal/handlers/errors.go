package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// statusForError maps service sentinels to HTTP status codes. Unmapped errors
// are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, apperrors.ErrInvalidAccount),
		errors.Is(err, apperrors.ErrInvalidParent),
		errors.Is(err, apperrors.ErrEmptyDocument),
		errors.Is(err, apperrors.ErrTaxCodeNotEffective),
		errors.Is(err, apperrors.ErrUnmappedAccount),
		errors.Is(err, apperrors.ErrNonDivisibleRange),
		errors.Is(err, apperrors.ErrNoOpenPeriod):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrDuplicateCode),
		errors.Is(err, apperrors.ErrAccountHasPostings),
		errors.Is(err, apperrors.ErrAccountHasOpenBalance),
		errors.Is(err, apperrors.ErrOverlappingFiscalYear),
		errors.Is(err, apperrors.ErrPeriodAlreadyClosed),
		errors.Is(err, apperrors.ErrPeriodNotClosed),
		errors.Is(err, apperrors.ErrPeriodClosedOrMissing),
		errors.Is(err, apperrors.ErrNotDraft),
		errors.Is(err, apperrors.ErrNotPosted),
		errors.Is(err, apperrors.ErrReturnAlreadyFinalized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped error response. Internal errors are logged
// at error level and the detail is withheld from the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// mustUserID pulls the acting user from the request context, replying 401 on
// absence. The bool mirrors gin's binding helpers: false means the response
// is already written.
func mustUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
