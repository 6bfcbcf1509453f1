package services

import (
	"context"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

// Store interfaces consumed by the services. The repositories package
// provides the GORM-backed implementations; tests substitute in-memory
// ones.

// CaseFilters narrows a case listing. States carries the already-resolved
// visibility scope; an empty slice means no state filtering.
type CaseFilters struct {
	AnalystID string
	Statuses  []string
	States    []string
	Page      int
	Limit     int
}

type CaseStore interface {
	// List returns one page of joined case views plus the total row count
	// for the filter, ordered by case date descending.
	List(ctx context.Context, f CaseFilters) ([]models.CaseView, int64, error)
	// GetByID returns nil without error when the case does not exist.
	GetByID(ctx context.Context, id string) (*models.Case, error)
	// GetView returns the joined projection of a single case.
	GetView(ctx context.Context, id string) (*models.CaseView, error)
	Create(ctx context.Context, c *models.Case) error
	// Save persists the full case row (list columns replaced whole).
	Save(ctx context.Context, c *models.Case) error
	// Delete removes the case; ErrCaseHasPayments when payments reference it.
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, caseID string) ([]models.AuditLog, error)
	AppendAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type PaymentStore interface {
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	ListByCase(ctx context.Context, caseID string) ([]models.Payment, error)
	// Create inserts the payment and adds its amount to the case's
	// totalInvoiceAmount in one transaction. ErrCaseNotFound when the
	// invoice reference does not resolve.
	Create(ctx context.Context, p *models.Payment) error
	// Update persists the payment and applies delta to the case total in
	// one transaction.
	Update(ctx context.Context, p *models.Payment, delta float64) error
	// Delete removes the payment and subtracts its amount from the case
	// total in one transaction.
	Delete(ctx context.Context, p *models.Payment) error
}

type ClientStore interface {
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetByRIF(ctx context.Context, rif string) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	// Delete enforces the dependent-case guard.
	Delete(ctx context.Context, id string) error
}

type PatientStore interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByCI(ctx context.Context, ci string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Create(ctx context.Context, p *models.Patient) error
	Update(ctx context.Context, p *models.Patient) error
	Delete(ctx context.Context, id string) error
}

type InsuranceHolderStore interface {
	GetByID(ctx context.Context, id string) (*models.InsuranceHolder, error)
	GetByCI(ctx context.Context, ci string) (*models.InsuranceHolder, error)
	GetAll(ctx context.Context) ([]models.InsuranceHolder, error)
	Create(ctx context.Context, h *models.InsuranceHolder) error
	Update(ctx context.Context, h *models.InsuranceHolder) error
	Delete(ctx context.Context, id string) error

	// Relationship operations run their multi-table writes inside one
	// transaction, keeping the patient's primary-holder pointer in step.
	CreateRelationship(ctx context.Context, rel *models.HolderPatientRelationship) error
	ListRelationships(ctx context.Context, patientID string) ([]models.HolderPatientRelationship, error)
	GetRelationship(ctx context.Context, id uint) (*models.HolderPatientRelationship, error)
	DeleteRelationship(ctx context.Context, id uint) error
}

type BaremoStore interface {
	GetByID(ctx context.Context, id string) (*models.Baremo, error)
	GetAll(ctx context.Context) ([]models.Baremo, error)
	Create(ctx context.Context, b *models.Baremo) error
	Update(ctx context.Context, b *models.Baremo) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	// Delete enforces the assigned-analyst guard.
	Delete(ctx context.Context, id string) error
}
