package models

import (
	"time"
)

// Patient is a medical-care recipient.
type Patient struct {
	ID                       string    `gorm:"primaryKey;column:id" json:"id"`
	CI                       string    `gorm:"column:ci;unique;not null" json:"ci"`
	Name                     string    `gorm:"column:name;not null;index" json:"name"`
	Phone                    string    `gorm:"column:phone" json:"phone"`
	Email                    string    `gorm:"column:email" json:"email"`
	Address                  string    `gorm:"column:address" json:"address"`
	City                     string    `gorm:"column:city" json:"city"`
	State                    string    `gorm:"column:state" json:"state"`
	BirthDate                string    `gorm:"column:birth_date" json:"birthDate"`
	Gender                   string    `gorm:"column:gender" json:"gender"`
	BloodType                string    `gorm:"column:blood_type" json:"bloodType"`
	Allergies                string    `gorm:"column:allergies;type:text" json:"allergies"`
	MedicalHistory           string    `gorm:"column:medical_history;type:text" json:"medicalHistory"`
	PrimaryInsuranceHolderID string    `gorm:"column:primary_insurance_holder_id;index" json:"primaryInsuranceHolderId"`
	IsActive                 bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt                time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Patient) TableName() string {
	return "patients"
}

// InsuranceHolder is a policyholder, optionally also a patient.
type InsuranceHolder struct {
	ID                 string    `gorm:"primaryKey;column:id" json:"id"`
	CI                 string    `gorm:"column:ci;unique;not null" json:"ci"`
	Name               string    `gorm:"column:name;not null;index" json:"name"`
	Phone              string    `gorm:"column:phone" json:"phone"`
	Email              string    `gorm:"column:email" json:"email"`
	Address            string    `gorm:"column:address" json:"address"`
	PolicyNumber       string    `gorm:"column:policy_number" json:"policyNumber"`
	PolicyType         string    `gorm:"column:policy_type" json:"policyType"`
	PolicyStatus       string    `gorm:"column:policy_status" json:"policyStatus"`
	PolicyStartDate    string    `gorm:"column:policy_start_date" json:"policyStartDate"`
	PolicyEndDate      string    `gorm:"column:policy_end_date" json:"policyEndDate"`
	CoverageType       string    `gorm:"column:coverage_type" json:"coverageType"`
	MaxCoverageAmount  float64   `gorm:"column:max_coverage_amount;default:0" json:"maxCoverageAmount"`
	UsedCoverageAmount float64   `gorm:"column:used_coverage_amount;default:0" json:"usedCoverageAmount"`
	ClientID           string    `gorm:"column:client_id;index" json:"clientId"`
	IsActive           bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (InsuranceHolder) TableName() string {
	return "insurance_holders"
}

// HolderPatientRelationship links an insurance holder to a patient. At most
// one active relationship per patient carries IsPrimary.
type HolderPatientRelationship struct {
	ID               uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	HolderID         string    `gorm:"column:holder_id;not null;index;uniqueIndex:idx_holder_patient" json:"holderId"`
	PatientID        string    `gorm:"column:patient_id;not null;index;uniqueIndex:idx_holder_patient" json:"patientId"`
	RelationshipType string    `gorm:"column:relationship_type;not null" json:"relationshipType"`
	IsPrimary        bool      `gorm:"column:is_primary;default:false" json:"isPrimary"`
	IsActive         bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (HolderPatientRelationship) TableName() string {
	return "holder_patient_relationships"
}

// NextPrimary picks the relationship to promote after the primary one is
// removed: the oldest remaining active relationship, or nil when none
// qualifies.
func NextPrimary(remaining []HolderPatientRelationship) *HolderPatientRelationship {
	var oldest *HolderPatientRelationship
	for i := range remaining {
		rel := &remaining[i]
		if !rel.IsActive {
			continue
		}
		if oldest == nil || rel.CreatedAt.Before(oldest.CreatedAt) {
			oldest = rel
		}
	}
	return oldest
}
