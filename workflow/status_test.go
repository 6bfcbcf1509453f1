package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionResultsEntered(t *testing.T) {
	// Non-empty results force the case into Pendiente por Auditar from any
	// status except the two audit-pipeline statuses.
	for _, current := range Statuses {
		next, err := Transition(current, TriggerResultsEntered, TransitionInput{Results: "informe médico"})
		require.NoError(t, err, "status %q", current)

		switch current {
		case StatusPendientePorAuditar, StatusAuditadoAprobado:
			assert.Equal(t, current, next, "status %q must not change", current)
		default:
			assert.Equal(t, StatusPendientePorAuditar, next, "status %q", current)
		}
	}
}

func TestTransitionEmptyResultsLeavesStatus(t *testing.T) {
	for _, current := range Statuses {
		next, err := Transition(current, TriggerResultsEntered, TransitionInput{Results: "   "})
		require.NoError(t, err)
		assert.Equal(t, current, next)
	}
}

func TestTransitionAuditApprove(t *testing.T) {
	next, err := Transition(StatusPendientePorAuditar, TriggerAuditApproved, TransitionInput{})
	require.NoError(t, err)
	assert.Equal(t, StatusAuditadoAprobado, next)

	// Approval notes are optional.
	next, err = Transition(StatusPendientePorAuditar, TriggerAuditApproved, TransitionInput{Notes: "todo en orden"})
	require.NoError(t, err)
	assert.Equal(t, StatusAuditadoAprobado, next)
}

func TestTransitionAuditRejectRequiresNotes(t *testing.T) {
	_, err := Transition(StatusPendientePorAuditar, TriggerAuditRejected, TransitionInput{})
	assert.ErrorIs(t, err, ErrRejectionNotesRequired)

	_, err = Transition(StatusPendientePorAuditar, TriggerAuditRejected, TransitionInput{Notes: "  "})
	assert.ErrorIs(t, err, ErrRejectionNotesRequired)

	next, err := Transition(StatusPendientePorAuditar, TriggerAuditRejected, TransitionInput{Notes: "faltan exámenes"})
	require.NoError(t, err)
	assert.Equal(t, StatusAuditadoRechazado, next)
}

func TestTransitionDocumentUpload(t *testing.T) {
	// Only an upload from exactly Atendido moves the case.
	for _, current := range Statuses {
		next, err := Transition(current, TriggerMedicalDocumentUploaded, TransitionInput{})
		require.NoError(t, err)

		if current == StatusAtendido {
			assert.Equal(t, StatusPendientePorAuditar, next)
		} else {
			assert.Equal(t, current, next, "status %q must not change", current)
		}
	}
}

func TestTransitionPreInvoice(t *testing.T) {
	for _, current := range Statuses {
		next, err := Transition(current, TriggerPreInvoiceGenerated, TransitionInput{})

		if current == StatusAuditadoAprobado {
			require.NoError(t, err)
			assert.Equal(t, StatusPreFacturado, next)
		} else {
			assert.ErrorIs(t, err, ErrPreInvoiceNotApproved, "status %q", current)
		}
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, err := Transition("Cerrado", TriggerResultsEntered, TransitionInput{Results: "x"})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("Pendiente "))
	assert.False(t, ValidStatus(""))
}
