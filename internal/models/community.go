package models

import (
	"time"
)

// Community represents a condominium community. It is managed by the
// surrounding CRUD layer; the billing core only reads it to scope
// contracts, charges and payments.
type Community struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Contracts []Contract `gorm:"foreignKey:CommunityID" json:"contracts,omitempty"`
}

// TableName specifies the table name for Community
func (Community) TableName() string {
	return "communities"
}
