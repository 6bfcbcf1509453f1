package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"

	"github.com/L1nkStart/cgm-system-v1-sub000/services"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing case", services.ErrCaseNotFound, http.StatusNotFound},
		{"missing payment", services.ErrPaymentNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("assigned analyst: %w", services.ErrUserNotFound), http.StatusNotFound},
		{"scoped out", services.ErrAccessDenied, http.StatusForbidden},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"field validation", validation.Errors{"clientId": errors.New("cannot be blank")}, http.StatusBadRequest},
		{"duplicate rif", services.ErrRIFAlreadyRegistered, http.StatusBadRequest},
		{"duplicate ci", services.ErrCIAlreadyRegistered, http.StatusBadRequest},
		{"duplicate email", services.ErrEmailAlreadyRegistered, http.StatusBadRequest},
		{"client delete guard", services.ErrClientHasCases, http.StatusBadRequest},
		{"case delete guard", services.ErrCaseHasPayments, http.StatusBadRequest},
		{"user delete guard", services.ErrUserHasCases, http.StatusBadRequest},
		{"analyst without states", services.ErrAnalystNoStates, http.StatusBadRequest},
		{"analyst state mismatch", fmt.Errorf("%w: Zulia", services.ErrAnalystStateMismatch), http.StatusBadRequest},
		{"rejection without notes", workflow.ErrRejectionNotesRequired, http.StatusBadRequest},
		{"pre-invoice wrong status", workflow.ErrPreInvoiceNotApproved, http.StatusBadRequest},
		{"unexpected failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
