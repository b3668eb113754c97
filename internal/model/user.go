package model

import (
	"time"
)

type UserRole string

const (
	Member  UserRole = "member"
	Creator UserRole = "creator"
	Admin   UserRole = "admin"
)

type LicenseStatus string

const (
	LicensePending  LicenseStatus = "pending"
	LicenseVerified LicenseStatus = "verified"
	LicenseRejected LicenseStatus = "rejected"
)

// swagger:model User
type User struct {
	BaseModel
	Name          string        `gorm:"size:100;not null" json:"name"`
	Email         string        `gorm:"size:100;unique;not null" json:"email"`
	Password      string        `gorm:"size:100;not null" json:"-"`
	Role          UserRole      `gorm:"size:20;default:'member'" json:"role"`
	Specialty     string        `gorm:"size:100" json:"specialty"`
	LicenseNumber string        `gorm:"size:50" json:"licenseNumber"`
	LicenseState  string        `gorm:"size:2" json:"licenseState"`
	NPINumber     string        `gorm:"size:10" json:"npiNumber"`
	LicenseStatus LicenseStatus `gorm:"size:20;default:'pending'" json:"licenseStatus"`
	VerifiedAt    *time.Time    `json:"verifiedAt,omitempty"`
	Avatar        string        `gorm:"size:255" json:"avatar"`
	Disabled      bool          `gorm:"default:false" json:"disabled"`
	StripeID      string        `gorm:"size:64;index" json:"-"`
	LastLogin     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"lastLogin"`
	LastSeen      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// LicenseIsVerified reports whether the user cleared medical-license review.
func (u *User) LicenseIsVerified() bool {
	return u.LicenseStatus == LicenseVerified
}
