package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AttendedService is one billable procedure instance attached to a case.
// The list is stored as a JSON column and always replaced whole on update.
type AttendedService struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Attended bool    `json:"attended"`
}

// Document references an externally stored file (the storage backend is
// outside this service).
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// ServiceList and DocumentList are JSON-typed columns. Scanning and valuing
// operate on the whole list; there is no element-level merge.
type ServiceList []AttendedService

func (l ServiceList) Value() (driver.Value, error) {
	if l == nil {
		l = ServiceList{}
	}
	return json.Marshal(l)
}

func (l *ServiceList) Scan(value interface{}) error {
	return scanJSONColumn(value, l, "services")
}

type DocumentList []Document

func (l DocumentList) Value() (driver.Value, error) {
	if l == nil {
		l = DocumentList{}
	}
	return json.Marshal(l)
}

func (l *DocumentList) Scan(value interface{}) error {
	return scanJSONColumn(value, l, "documents")
}

// scanJSONColumn decodes a JSON column that may arrive as []byte, string or
// NULL depending on the driver.
func scanJSONColumn(value interface{}, dest interface{}, column string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported type %T for %s column", value, column)
	}
}

// Case is a unit of insured medical work.
type Case struct {
	ID                string       `gorm:"primaryKey;column:id" json:"id"`
	ClientID          string       `gorm:"column:client_id;not null;index" json:"clientId"`
	PatientID         string       `gorm:"column:patient_id;index" json:"patientId"`
	InsuranceHolderID string       `gorm:"column:insurance_holder_id;not null;index" json:"insuranceHolderId"`
	BaremoID          string       `gorm:"column:baremo_id;not null;index" json:"baremoId"`
	AssignedAnalystID string       `gorm:"column:assigned_analyst_id;not null;index" json:"assignedAnalystId"`
	Date              time.Time    `gorm:"column:date;not null;index" json:"date"`
	State             string       `gorm:"column:state;not null;index" json:"state"`
	City              string       `gorm:"column:city" json:"city"`
	Address           string       `gorm:"column:address" json:"address"`
	Status            string       `gorm:"column:status;not null;index" json:"status"`
	Doctor            string       `gorm:"column:doctor" json:"doctor"`
	Schedule          string       `gorm:"column:schedule" json:"schedule"`
	Consultory        string       `gorm:"column:consultory" json:"consultory"`
	Results           string       `gorm:"column:results;type:text" json:"results"`
	AuditNotes        string       `gorm:"column:audit_notes;type:text" json:"auditNotes"`
	ClinicCost        float64      `gorm:"column:clinic_cost;default:0" json:"clinicCost"`
	CGMServiceCost    float64      `gorm:"column:cgm_service_cost;default:0" json:"cgmServiceCost"`
	TotalInvoiceAmount float64     `gorm:"column:total_invoice_amount;default:0" json:"totalInvoiceAmount"`
	InvoiceGenerated  bool         `gorm:"column:invoice_generated;default:false" json:"invoiceGenerated"`
	Services          ServiceList  `gorm:"column:services;type:jsonb" json:"services"`
	Documents         DocumentList `gorm:"column:documents;type:jsonb" json:"documents"`
	PreInvoiceDocuments DocumentList `gorm:"column:pre_invoice_documents;type:jsonb" json:"preInvoiceDocuments"`
	CreatorName       string       `gorm:"column:creator_name" json:"creatorName"`
	CreatorEmail      string       `gorm:"column:creator_email" json:"creatorEmail"`
	CreatorPhone      string       `gorm:"column:creator_phone" json:"creatorPhone"`
	Diagnosis         string       `gorm:"column:diagnosis" json:"diagnosis"`
	Provider          string       `gorm:"column:provider" json:"provider"`
	Collective        string       `gorm:"column:collective" json:"collective"`
	TypeOfRequirement string       `gorm:"column:type_of_requirement" json:"typeOfRequirement"`
	CreatedAt         time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Case) TableName() string {
	return "cases"
}

// CaseView is a case row joined with display-only fields from related
// tables. These projections are never written back.
type CaseView struct {
	Case         `gorm:"embedded"`
	AnalystName  string `gorm:"column:analyst_name" json:"analystName"`
	PatientName  string `gorm:"column:patient_name" json:"patientName"`
	PatientCI    string `gorm:"column:patient_ci" json:"patientCI"`
	PatientPhone string `gorm:"column:patient_phone" json:"patientPhone"`
	HolderName   string `gorm:"column:holder_name" json:"holderName"`
	ClientName   string `gorm:"column:client_name" json:"clientName"`
	BaremoName   string `gorm:"column:baremo_name" json:"baremoName"`
}

// CaseUpdate carries a partial case update. Nil fields are left untouched;
// every non-nil field is written verbatim. List-valued fields replace the
// entire prior value.
type CaseUpdate struct {
	ClientID            *string       `json:"clientId"`
	PatientID           *string       `json:"patientId"`
	InsuranceHolderID   *string       `json:"insuranceHolderId"`
	BaremoID            *string       `json:"baremoId"`
	AssignedAnalystID   *string       `json:"assignedAnalystId"`
	Date                *time.Time    `json:"date"`
	State               *string       `json:"state"`
	City                *string       `json:"city"`
	Address             *string       `json:"address"`
	Status              *string       `json:"status"`
	Doctor              *string       `json:"doctor"`
	Schedule            *string       `json:"schedule"`
	Consultory          *string       `json:"consultory"`
	Results             *string       `json:"results"`
	AuditNotes          *string       `json:"auditNotes"`
	ClinicCost          *float64      `json:"clinicCost"`
	CGMServiceCost      *float64      `json:"cgmServiceCost"`
	TotalInvoiceAmount  *float64      `json:"totalInvoiceAmount"`
	InvoiceGenerated    *bool         `json:"invoiceGenerated"`
	Services            *ServiceList  `json:"services"`
	Documents           *DocumentList `json:"documents"`
	PreInvoiceDocuments *DocumentList `json:"preInvoiceDocuments"`
	Diagnosis           *string       `json:"diagnosis"`
	Provider            *string       `json:"provider"`
	Collective          *string       `json:"collective"`
	TypeOfRequirement   *string       `json:"typeOfRequirement"`
}

// ApplyTo writes every present field onto the case.
func (u *CaseUpdate) ApplyTo(c *Case) {
	if u.ClientID != nil {
		c.ClientID = *u.ClientID
	}
	if u.PatientID != nil {
		c.PatientID = *u.PatientID
	}
	if u.InsuranceHolderID != nil {
		c.InsuranceHolderID = *u.InsuranceHolderID
	}
	if u.BaremoID != nil {
		c.BaremoID = *u.BaremoID
	}
	if u.AssignedAnalystID != nil {
		c.AssignedAnalystID = *u.AssignedAnalystID
	}
	if u.Date != nil {
		c.Date = *u.Date
	}
	if u.State != nil {
		c.State = *u.State
	}
	if u.City != nil {
		c.City = *u.City
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Doctor != nil {
		c.Doctor = *u.Doctor
	}
	if u.Schedule != nil {
		c.Schedule = *u.Schedule
	}
	if u.Consultory != nil {
		c.Consultory = *u.Consultory
	}
	if u.Results != nil {
		c.Results = *u.Results
	}
	if u.AuditNotes != nil {
		c.AuditNotes = *u.AuditNotes
	}
	if u.ClinicCost != nil {
		c.ClinicCost = *u.ClinicCost
	}
	if u.CGMServiceCost != nil {
		c.CGMServiceCost = *u.CGMServiceCost
	}
	if u.TotalInvoiceAmount != nil {
		c.TotalInvoiceAmount = *u.TotalInvoiceAmount
	}
	if u.InvoiceGenerated != nil {
		c.InvoiceGenerated = *u.InvoiceGenerated
	}
	if u.Services != nil {
		c.Services = *u.Services
	}
	if u.Documents != nil {
		c.Documents = *u.Documents
	}
	if u.PreInvoiceDocuments != nil {
		c.PreInvoiceDocuments = *u.PreInvoiceDocuments
	}
	if u.Diagnosis != nil {
		c.Diagnosis = *u.Diagnosis
	}
	if u.Provider != nil {
		c.Provider = *u.Provider
	}
	if u.Collective != nil {
		c.Collective = *u.Collective
	}
	if u.TypeOfRequirement != nil {
		c.TypeOfRequirement = *u.TypeOfRequirement
	}
}

// AuditLog records a case status change.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CaseID     string    `gorm:"column:case_id;not null;index" json:"caseId"`
	UserID     string    `gorm:"column:user_id;not null" json:"userId"`
	FromStatus string    `gorm:"column:from_status;not null" json:"fromStatus"`
	ToStatus   string    `gorm:"column:to_status;not null" json:"toStatus"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
