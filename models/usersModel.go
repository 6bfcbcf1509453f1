package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Role names. Analista Concertado and Médico Auditor are state-scoped: they
// only see cases whose state is in their assignedStates list.
const (
	RoleSuperusuario       = "Superusuario"
	RoleCoordinadorRegional = "Coordinador Regional"
	RoleAnalistaConcertado = "Analista Concertado"
	RoleMedicoAuditor      = "Médico Auditor"
	RoleJefeFinanciero     = "Jefe Financiero"
	RoleAdministrador      = "Administrador"
)

// Role represents a user role.
type Role struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts the initial roles into the database.
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: RoleSuperusuario, Description: "Full access to the system"},
		{Name: RoleCoordinadorRegional, Description: "Regional coordination, unscoped case reads"},
		{Name: RoleAnalistaConcertado, Description: "Handles cases in assigned states"},
		{Name: RoleMedicoAuditor, Description: "Audits attended cases in assigned states"},
		{Name: RoleJefeFinanciero, Description: "Pre-invoice generation and payments"},
		{Name: RoleAdministrador, Description: "Administrative access, user management"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// StringList is a JSON-typed column holding an ordered list of strings
// (assigned states), replaced whole on update.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSONColumn(value, l, "assigned_states")
}

// User is an operator account. AssignedStates is only meaningful for the
// state-scoped roles.
type User struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	Email          string     `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Name           string     `gorm:"size:100;not null;column:name" json:"name"`
	Phone          string     `gorm:"column:phone" json:"phone"`
	Role           string     `gorm:"size:50;not null;index;column:role" json:"role"`
	Password       string     `gorm:"size:255;not null;column:password" json:"-"`
	AssignedStates StringList `gorm:"column:assigned_states;type:jsonb" json:"assignedStates"`
	IsActive       bool       `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
