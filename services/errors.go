package services

import "errors"

// Sentinel errors for the request boundary. Handlers translate them into
// HTTP statuses; everything else surfaces as a generic internal error.
var (
	// Not found.
	ErrCaseNotFound         = errors.New("case not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrHolderNotFound       = errors.New("insurance holder not found")
	ErrRelationshipNotFound = errors.New("holder-patient relationship not found")
	ErrBaremoNotFound       = errors.New("baremo not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrUserNotFound         = errors.New("user not found")

	// Authorization. Distinct from not-found so callers can tell "doesn't
	// exist" from "exists but you can't see it".
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Duplicate unique keys.
	ErrRIFAlreadyRegistered   = errors.New("rif already registered")
	ErrCIAlreadyRegistered    = errors.New("ci already registered")
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// Analyst assignment.
	ErrAnalystNoStates      = errors.New("analyst has no assigned states, cannot handle cases")
	ErrAnalystStateMismatch = errors.New("analyst cannot handle cases from this state")

	// Referential-integrity guards.
	ErrClientHasCases  = errors.New("client has associated cases and cannot be deleted")
	ErrPatientHasCases = errors.New("patient has associated cases and cannot be deleted")
	ErrHolderHasCases  = errors.New("insurance holder has associated cases and cannot be deleted")
	ErrUserHasCases    = errors.New("user is assigned to cases and cannot be deleted")
	ErrCaseHasPayments = errors.New("case has registered payments and cannot be deleted")
)
