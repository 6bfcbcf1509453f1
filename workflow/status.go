// Package workflow holds the case lifecycle rules: the status state
// machine, the role/state access policy and the listing pagination math.
// Everything here is pure so the (status, trigger) space can be enumerated
// in tests.
package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Case statuses. The order matters for display only, never for validity.
const (
	StatusPendiente          = "Pendiente"
	StatusAgendado           = "Agendado"
	StatusAtendido           = "Atendido"
	StatusPriorizado         = "Priorizado"
	StatusRemesado           = "Remesado"
	StatusAnulado            = "Anulado"
	StatusPendientePorAuditar = "Pendiente por Auditar"
	StatusAuditadoAprobado   = "Auditado/Aprobado"
	StatusAuditadoRechazado  = "Auditado/Rechazado"
	StatusPreFacturado       = "Pre-facturado"
)

// Statuses lists every valid case status.
var Statuses = []string{
	StatusPendiente,
	StatusAgendado,
	StatusAtendido,
	StatusPriorizado,
	StatusRemesado,
	StatusAnulado,
	StatusPendientePorAuditar,
	StatusAuditadoAprobado,
	StatusAuditadoRechazado,
	StatusPreFacturado,
}

var validStatuses = func() map[string]bool {
	m := make(map[string]bool, len(Statuses))
	for _, s := range Statuses {
		m[s] = true
	}
	return m
}()

// ValidStatus reports whether s is one of the enumerated case statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Trigger identifies the operation driving a status transition.
type Trigger int

const (
	// TriggerResultsEntered fires when an edit writes a non-empty results
	// text onto the case.
	TriggerResultsEntered Trigger = iota
	// TriggerAuditApproved and TriggerAuditRejected are the explicit audit
	// actions; rejection requires notes.
	TriggerAuditApproved
	TriggerAuditRejected
	// TriggerMedicalDocumentUploaded fires when a medical-results document
	// list is written; it only moves the case out of Atendido.
	TriggerMedicalDocumentUploaded
	// TriggerPreInvoiceGenerated fires when the pre-invoice is generated;
	// only valid from Auditado/Aprobado.
	TriggerPreInvoiceGenerated
)

func (t Trigger) String() string {
	switch t {
	case TriggerResultsEntered:
		return "results-entered"
	case TriggerAuditApproved:
		return "audit-approved"
	case TriggerAuditRejected:
		return "audit-rejected"
	case TriggerMedicalDocumentUploaded:
		return "medical-document-uploaded"
	case TriggerPreInvoiceGenerated:
		return "pre-invoice-generated"
	}
	return "unknown"
}

// TransitionInput carries the trigger payload.
type TransitionInput struct {
	// Results is the results text of the edit, for TriggerResultsEntered.
	Results string
	// Notes is the audit note text, for the audit triggers.
	Notes string
}

var (
	ErrUnknownStatus          = errors.New("unknown case status")
	ErrRejectionNotesRequired = errors.New("rejection notes are required")
	ErrPreInvoiceNotApproved  = errors.New("case must be Auditado/Aprobado to generate a pre-invoice")
)

// Transition computes the next status for a case. It consolidates every
// trigger site of the workflow so callers never compare statuses by hand.
// A trigger that does not apply returns the current status unchanged.
func Transition(current string, trigger Trigger, in TransitionInput) (string, error) {
	if !validStatuses[current] {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}

	switch trigger {
	case TriggerResultsEntered:
		if strings.TrimSpace(in.Results) == "" {
			return current, nil
		}
		if current == StatusPendientePorAuditar || current == StatusAuditadoAprobado {
			return current, nil
		}
		return StatusPendientePorAuditar, nil

	case TriggerAuditApproved:
		return StatusAuditadoAprobado, nil

	case TriggerAuditRejected:
		if strings.TrimSpace(in.Notes) == "" {
			return "", ErrRejectionNotesRequired
		}
		return StatusAuditadoRechazado, nil

	case TriggerMedicalDocumentUploaded:
		if current == StatusAtendido {
			return StatusPendientePorAuditar, nil
		}
		return current, nil

	case TriggerPreInvoiceGenerated:
		if current != StatusAuditadoAprobado {
			return "", ErrPreInvoiceNotApproved
		}
		return StatusPreFacturado, nil
	}

	return "", fmt.Errorf("unknown transition trigger %d", trigger)
}
