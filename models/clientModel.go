package models

import (
	"time"
)

// Client is an insurer/payer account.
type Client struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Name          string    `gorm:"column:name;not null;index" json:"name"`
	RIF           string    `gorm:"column:rif;unique;not null" json:"rif"`
	Address       string    `gorm:"column:address" json:"address"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	Email         string    `gorm:"column:email" json:"email"`
	ContactPerson string    `gorm:"column:contact_person" json:"contactPerson"`
	ContactPhone  string    `gorm:"column:contact_phone" json:"contactPhone"`
	BaremoID      string    `gorm:"column:baremo_id" json:"baremoId"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"isActive"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Client) TableName() string {
	return "clients"
}
