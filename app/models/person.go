package models

import "gorm.io/gorm"

// Roles carried in sessions and admin-API JWT claims.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Person holds the identity fields shared by admins and clients. It is
// embedded, not a table of its own; each variant gets its own table with
// these columns.
type Person struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"          json:"name"`
	Surname  string `gorm:"size:255;not null"          json:"surname"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"          json:"-"` // bcrypt hash, never serialised
	Phone    string `gorm:"size:20"                    json:"phone"`
	Image    string `gorm:"size:255"                   json:"image"` // storage path of the profile picture
}

// FullName is the display name used in page headers and emails.
func (p Person) FullName() string {
	return p.Name + " " + p.Surname
}

// Admin is a back-office user. Superadmin unlocks admin management.
type Admin struct {
	Person
	Superadmin bool `gorm:"not null;default:false" json:"superadmin"`
}

// Client is a storefront customer.
type Client struct {
	Person
	Orders []Order `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
}
