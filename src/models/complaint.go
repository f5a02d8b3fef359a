package models

import (
	"time"

	"gorm.io/datatypes"
)

type ComplaintKind string

const (
	ComplaintKindIndividual   ComplaintKind = "individual"
	ComplaintKindOrganization ComplaintKind = "organization"
)

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusProcessing ComplaintStatus = "processing"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// Complaint is one traffic-fine appeal submission. Field names follow the
// multipart form keys the submission wizard sends.
type Complaint struct {
	ID   uint          `gorm:"primaryKey" json:"id"`
	Kind ComplaintKind `gorm:"type:complaint_kind;not null" json:"userType"`

	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`

	// Organization identity
	INN            string `gorm:"size:12" json:"inn"`
	CompanyName    string `gorm:"size:255" json:"companyName"`
	ContractNumber string `gorm:"size:100" json:"contractNumber"`

	ResolutionNumber string `gorm:"size:100" json:"resolutionNumber"`
	ResolutionDate   string `gorm:"size:10" json:"resolutionDate"`
	IssuingAuthority string `gorm:"size:255" json:"issuingAuthority"`
	ReceivedDate     string `gorm:"size:10" json:"receivedDate"`
	ReceivedDetails  string `gorm:"size:255" json:"receivedDetails"`

	ViolationDate    string `gorm:"size:10" json:"violationDate"`
	ViolationTime    string `gorm:"size:5" json:"violationTime"`
	ViolationAddress string `gorm:"size:255" json:"violationAddress"`
	Description      string `gorm:"type:text" json:"description"`

	CarModel        string `gorm:"size:100" json:"carModel"`
	CarPlate        string `gorm:"size:9" json:"carPlate"`
	DetectionMethod string `gorm:"size:255" json:"detectionMethod"`

	// Photo holds the stored attachment path ("" when none was uploaded).
	Photo     string `gorm:"size:255" json:"photo"`
	Agreement bool   `gorm:"not null" json:"agreement"`
	Terms     bool   `gorm:"not null" json:"terms"`

	Status ComplaintStatus `gorm:"type:complaint_status;default:'pending';not null" json:"status"`
	// History accumulates admin status transitions as JSON entries.
	History datatypes.JSON `json:"history,omitempty"`

	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"date"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StatusTransition is one History entry.
type StatusTransition struct {
	From ComplaintStatus `json:"from"`
	To   ComplaintStatus `json:"to"`
	At   time.Time       `json:"at"`
}
