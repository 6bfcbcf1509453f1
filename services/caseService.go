package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

// CaseService owns the case lifecycle: scoped listings, creation with
// analyst validation, partial updates through the status state machine,
// audits, document uploads and pre-invoice generation.
type CaseService struct {
	cases CaseStore
	users UserStore
}

func NewCaseService(cases CaseStore, users UserStore) *CaseService {
	return &CaseService{cases: cases, users: users}
}

// ListParams are the raw listing inputs from the REST boundary.
type ListParams struct {
	AnalystID string
	Statuses  []string
	States    []string
	Page      int
	Limit     int
}

// List returns the page of cases visible to the session. Scoped-out rows
// are silently excluded, never erroring.
func (s *CaseService) List(ctx context.Context, session workflow.Session, p ListParams) ([]models.CaseView, workflow.Pagination, error) {
	page, limit := workflow.NormalizePage(p.Page, p.Limit)

	states, restricted := workflow.VisibleStates(session, p.States)
	if restricted {
		// Scoped role with no assigned states sees zero cases.
		return []models.CaseView{}, workflow.Paginate(0, page, limit), nil
	}

	views, total, err := s.cases.List(ctx, CaseFilters{
		AnalystID: p.AnalystID,
		Statuses:  p.Statuses,
		States:    states,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, workflow.Pagination{}, fmt.Errorf("failed to list cases: %w", err)
	}
	if views == nil {
		views = []models.CaseView{}
	}
	return views, workflow.Paginate(total, page, limit), nil
}

// Get returns one denormalized case. A case outside the session's state
// scope yields ErrAccessDenied, distinct from ErrCaseNotFound.
func (s *CaseService) Get(ctx context.Context, session workflow.Session, id string) (*models.CaseView, error) {
	view, err := s.cases.GetView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	if view == nil {
		return nil, ErrCaseNotFound
	}
	if !workflow.CanAccessCase(session, view.State) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

// Create registers a new case with status Pendiente, zeroed costs and a
// creator snapshot taken from the session user.
func (s *CaseService) Create(ctx context.Context, session workflow.Session, c *models.Case) (*models.Case, error) {
	if c.Status == "" {
		c.Status = workflow.StatusPendiente
	}
	if err := utils.ValidateNewCase(*c); err != nil {
		return nil, err
	}
	if err := s.validateAnalyst(ctx, c.AssignedAnalystID, c.State); err != nil {
		return nil, err
	}

	c.ID = uuid.New().String()
	c.ClinicCost = 0
	c.CGMServiceCost = 0
	c.TotalInvoiceAmount = 0
	c.InvoiceGenerated = false

	if creator, err := s.users.GetByID(ctx, session.UserID); err == nil && creator != nil {
		c.CreatorName = creator.Name
		c.CreatorEmail = creator.Email
		c.CreatorPhone = creator.Phone
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return c, nil
}

// Update applies a partial update. Every present field is written verbatim
// (list fields replaced whole), the analyst assignment is re-validated
// against the effective post-update values, and a non-empty results text
// routes the case into the audit queue.
func (s *CaseService) Update(ctx context.Context, session workflow.Session, id string, upd models.CaseUpdate) (*models.Case, error) {
	c, err := s.loadAccessible(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateCaseUpdate(upd); err != nil {
		return nil, err
	}

	// Validate the assignment against the merged values when either side
	// of the analyst/state pair changes.
	if upd.AssignedAnalystID != nil || upd.State != nil {
		analystID := c.AssignedAnalystID
		if upd.AssignedAnalystID != nil {
			analystID = *upd.AssignedAnalystID
		}
		caseState := c.State
		if upd.State != nil {
			caseState = *upd.State
		}
		if err := s.validateAnalyst(ctx, analystID, caseState); err != nil {
			return nil, err
		}
	}

	previousStatus := c.Status
	upd.ApplyTo(c)

	if upd.Results != nil {
		next, err := workflow.Transition(c.Status, workflow.TriggerResultsEntered, workflow.TransitionInput{Results: c.Results})
		if err != nil {
			return nil, err
		}
		c.Status = next
	}

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}
	s.logStatusChange(ctx, session, c, previousStatus, "")
	return c, nil
}

// Audit records the auditor's verdict. Rejections without notes fail
// validation and leave the case untouched.
func (s *CaseService) Audit(ctx context.Context, session workflow.Session, id string, approved bool, notes string) (*models.Case, error) {
	if session.Role != models.RoleMedicoAuditor {
		return nil, ErrAccessDenied
	}
	c, err := s.loadAccessible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	trigger := workflow.TriggerAuditApproved
	if !approved {
		trigger = workflow.TriggerAuditRejected
	}
	next, err := workflow.Transition(c.Status, trigger, workflow.TransitionInput{Notes: notes})
	if err != nil {
		return nil, err
	}

	previousStatus := c.Status
	c.Status = next
	c.AuditNotes = notes

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save audit verdict: %w", err)
	}
	s.logStatusChange(ctx, session, c, previousStatus, notes)
	return c, nil
}

// Document categories accepted by UploadDocuments.
const (
	DocumentCategoryMedical    = "medical"
	DocumentCategoryPreInvoice = "pre-invoice"
)

// UploadDocuments appends file references to one of the case's document
// lists. A medical upload while the case is Atendido moves it to Pendiente
// por Auditar; uploads in any other status leave the status untouched.
func (s *CaseService) UploadDocuments(ctx context.Context, session workflow.Session, id, category string, docs []models.Document) (*models.Case, error) {
	c, err := s.loadAccessible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	previousStatus := c.Status
	switch category {
	case DocumentCategoryMedical:
		c.Documents = append(c.Documents, docs...)
		next, err := workflow.Transition(c.Status, workflow.TriggerMedicalDocumentUploaded, workflow.TransitionInput{})
		if err != nil {
			return nil, err
		}
		c.Status = next
	case DocumentCategoryPreInvoice:
		c.PreInvoiceDocuments = append(c.PreInvoiceDocuments, docs...)
	default:
		return nil, fmt.Errorf("unknown document category %q", category)
	}

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save documents: %w", err)
	}
	s.logStatusChange(ctx, session, c, previousStatus, "")
	return c, nil
}

// GeneratePreInvoice sets the cost breakdown on an approved case and moves
// it to Pre-facturado. Only Jefe Financiero and Superusuario may generate.
func (s *CaseService) GeneratePreInvoice(ctx context.Context, session workflow.Session, id string, clinicCost, cgmServiceCost float64) (*models.Case, error) {
	if session.Role != models.RoleJefeFinanciero && session.Role != models.RoleSuperusuario {
		return nil, ErrAccessDenied
	}
	c, err := s.loadAccessible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Transition(c.Status, workflow.TriggerPreInvoiceGenerated, workflow.TransitionInput{})
	if err != nil {
		return nil, err
	}

	previousStatus := c.Status
	c.ClinicCost = clinicCost
	c.CGMServiceCost = cgmServiceCost
	c.TotalInvoiceAmount = clinicCost + cgmServiceCost
	c.InvoiceGenerated = true
	c.Status = next

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save pre-invoice: %w", err)
	}
	s.logStatusChange(ctx, session, c, previousStatus, "")
	return c, nil
}

// GetPreInvoice returns the pre-invoice projection of an audited case.
func (s *CaseService) GetPreInvoice(ctx context.Context, session workflow.Session, id string) (*models.CaseView, error) {
	if session.Role != models.RoleJefeFinanciero && session.Role != models.RoleSuperusuario {
		return nil, ErrAccessDenied
	}
	view, err := s.cases.GetView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	if view == nil {
		return nil, ErrCaseNotFound
	}
	if view.Status != workflow.StatusAuditadoAprobado && view.Status != workflow.StatusPreFacturado {
		return nil, workflow.ErrPreInvoiceNotApproved
	}
	return view, nil
}

// Delete removes a case. Privileged roles only; cases with registered
// payments are guarded.
func (s *CaseService) Delete(ctx context.Context, session workflow.Session, id string) error {
	if session.Role != models.RoleSuperusuario && session.Role != models.RoleAdministrador {
		return ErrAccessDenied
	}
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get case: %w", err)
	}
	if c == nil {
		return ErrCaseNotFound
	}
	return s.cases.Delete(ctx, id)
}

// History lists the status changes recorded for a case.
func (s *CaseService) History(ctx context.Context, session workflow.Session, id string) ([]models.AuditLog, error) {
	if _, err := s.loadAccessible(ctx, session, id); err != nil {
		return nil, err
	}
	entries, err := s.cases.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load case history: %w", err)
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return entries, nil
}

// loadAccessible fetches a case and enforces the state scope, keeping 404
// and 403 distinguishable.
func (s *CaseService) loadAccessible(ctx context.Context, session workflow.Session, id string) (*models.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}
	if !workflow.CanAccessCase(session, c.State) {
		return nil, ErrAccessDenied
	}
	return c, nil
}

// validateAnalyst verifies the assignee can handle cases from the case's
// state.
func (s *CaseService) validateAnalyst(ctx context.Context, analystID, caseState string) error {
	analyst, err := s.users.GetByID(ctx, analystID)
	if err != nil {
		return fmt.Errorf("failed to resolve assigned analyst: %w", err)
	}
	if analyst == nil {
		return fmt.Errorf("assigned analyst: %w", ErrUserNotFound)
	}
	if !workflow.StateScopedRole(analyst.Role) {
		return nil
	}
	if len(analyst.AssignedStates) == 0 {
		return ErrAnalystNoStates
	}
	if !workflow.CanHandleCases(analyst.Role, analyst.AssignedStates, caseState) {
		return fmt.Errorf("%w: %s", ErrAnalystStateMismatch, caseState)
	}
	return nil
}

// logStatusChange appends an audit-log row when the status actually moved.
// Failures are logged but never abort the main write.
func (s *CaseService) logStatusChange(ctx context.Context, session workflow.Session, c *models.Case, previousStatus, notes string) {
	if c.Status == previousStatus {
		return
	}
	err := s.cases.AppendAuditLog(ctx, &models.AuditLog{
		CaseID:     c.ID,
		UserID:     session.UserID,
		FromStatus: previousStatus,
		ToStatus:   c.Status,
		Notes:      notes,
	})
	if err != nil {
		log.Printf("Failed to append audit log for case %s (%s -> %s): %v", c.ID, previousStatus, c.Status, err)
	}
}
