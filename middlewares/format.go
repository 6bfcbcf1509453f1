package middlewares

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/L1nkStart/cgm-system-v1-sub000/services"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}

// RespondError maps a service error onto its HTTP status. Unrecognized
// errors are logged and reported as a generic internal error.
func RespondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		HttpError(c, "internal server error", status, err)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusForError(err error) int {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, services.ErrCaseNotFound),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrHolderNotFound),
		errors.Is(err, services.ErrRelationshipNotFound),
		errors.Is(err, services.ErrBaremoNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Duplicate keys, delete guards and workflow preconditions are all
	// client mistakes, reported as 400 like the field validations.
	case errors.Is(err, services.ErrRIFAlreadyRegistered),
		errors.Is(err, services.ErrCIAlreadyRegistered),
		errors.Is(err, services.ErrEmailAlreadyRegistered),
		errors.Is(err, services.ErrClientHasCases),
		errors.Is(err, services.ErrPatientHasCases),
		errors.Is(err, services.ErrHolderHasCases),
		errors.Is(err, services.ErrUserHasCases),
		errors.Is(err, services.ErrCaseHasPayments),
		errors.Is(err, services.ErrAnalystNoStates),
		errors.Is(err, services.ErrAnalystStateMismatch),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, workflow.ErrRejectionNotesRequired),
		errors.Is(err, workflow.ErrPreInvoiceNotApproved),
		errors.Is(err, utils.ErrPasswordTooShort),
		errors.Is(err, utils.ErrPasswordNotComplex):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
