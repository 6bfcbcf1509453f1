package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Procedure is one line of a fee schedule.
type Procedure struct {
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	IsActive bool    `json:"isActive"`
	Type     string  `json:"type"`
}

// ProcedureList is a JSON-typed column, replaced whole on update.
type ProcedureList []Procedure

func (l ProcedureList) Value() (driver.Value, error) {
	if l == nil {
		l = ProcedureList{}
	}
	return json.Marshal(l)
}

func (l *ProcedureList) Scan(value interface{}) error {
	return scanJSONColumn(value, l, "procedures")
}

// Baremo is a fee schedule tied to a clinic and assignable to clients.
type Baremo struct {
	ID            string        `gorm:"primaryKey;column:id" json:"id"`
	Name          string        `gorm:"column:name;not null;index" json:"name"`
	ClinicName    string        `gorm:"column:clinic_name;not null" json:"clinicName"`
	EffectiveDate string        `gorm:"column:effective_date" json:"effectiveDate"`
	Procedures    ProcedureList `gorm:"column:procedures;type:jsonb" json:"procedures"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Baremo) TableName() string {
	return "baremos"
}
