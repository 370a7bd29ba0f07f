package domain

import (
	"regexp"
	"time"
)

// SupplierContact holds the contact sub-record of a supplier. The email is
// normalized to lowercase and unique across all suppliers.
type SupplierContact struct {
	Email   string `gorm:"size:255;uniqueIndex" json:"email"`
	Phone   string `gorm:"size:64" json:"phone"`
	Address string `gorm:"size:512" json:"address"`
}

// Supplier represents a vendor that purchase orders are placed against.
type Supplier struct {
	ID        int64           `gorm:"primaryKey" json:"id,string"`
	Name      string          `gorm:"size:255;index" json:"name"`
	Contact   SupplierContact `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TableName Specify table name
func (Supplier) TableName() string {
	return "suppliers"
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether s looks like an email address. The pattern is
// deliberately loose, matching what the API has always accepted.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
