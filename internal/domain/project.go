package domain

import (
	"time"
)

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Cost      float64   `json:"cost"`
	Clients   []Sale    `json:"clients"`
}

// Sale is one billable client job inside a project.
type Sale struct {
	ID                     string     `json:"id"`
	SequenceNumber         int        `json:"sequenceNumber"`
	ClientName             string     `json:"clientName"`
	PhoneNumber            string     `json:"phoneNumber"`
	ServiceType            string     `json:"serviceType"`
	Status                 SaleStatus `json:"status"`
	Price                  float64    `json:"price"`
	Quantity               int        `json:"quantity"`
	Items                  []SaleItem `json:"items"`
	LeadDate               Date       `json:"leadDate"`
	SentDate               *Date      `json:"sentDate,omitempty"`
	Reminders              []Reminder `json:"reminders"`
	AssignedWorkerIDs      []string   `json:"assignedWorkerIds"`
	TeamInstructions       string     `json:"teamInstructions,omitempty"`
	HasClientModifications bool       `json:"hasClientModifications,omitempty"`
}

type SaleItem struct {
	Name          string       `json:"name"`
	IsPaid        bool         `json:"isPaid"`
	Status        ItemStatus   `json:"status"`
	Type          TaskType     `json:"type"`
	Description   string       `json:"description,omitempty"`
	Attachments   []Attachment `json:"attachments"`
	Deliverables  []Attachment `json:"deliverables,omitempty"`
	RejectionNote string       `json:"rejectionNote,omitempty"`
}

type Attachment struct {
	Name string         `json:"name"`
	Type AttachmentType `json:"type"`
	Data string         `json:"data"`
}

type SaleStatus string

const (
	StatusLead       SaleStatus = "Lead"
	StatusContacted  SaleStatus = "Contacted"
	StatusInProgress SaleStatus = "InProgress"
	StatusDelivered  SaleStatus = "Delivered"
	StatusPaid       SaleStatus = "Paid"
	StatusClosedLost SaleStatus = "ClosedLost"
	StatusScammer    SaleStatus = "Scammer"
)

func (s SaleStatus) IsValid() bool {
	switch s {
	case StatusLead, StatusContacted, StatusInProgress, StatusDelivered, StatusPaid, StatusClosedLost, StatusScammer:
		return true
	default:
		return false
	}
}

// IsTerminalNegative reports statuses whose unpaid work no longer counts as potential revenue.
func (s SaleStatus) IsTerminalNegative() bool {
	return s == StatusClosedLost || s == StatusScammer
}

type ItemStatus string

const (
	ItemPending       ItemStatus = "Pending"
	ItemInProgress    ItemStatus = "InProgress"
	ItemDelivered     ItemStatus = "Delivered"
	ItemNeedsRevision ItemStatus = "NeedsRevision"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemPending, ItemInProgress, ItemDelivered, ItemNeedsRevision:
		return true
	default:
		return false
	}
}

type TaskType string

const (
	TaskDesign    TaskType = "design"
	TaskVideo     TaskType = "video"
	TaskWriting   TaskType = "writing"
	TaskVoiceOver TaskType = "voiceover"
	TaskOther     TaskType = "other"
)

type AttachmentType string

const (
	AttachmentAudio AttachmentType = "audio"
	AttachmentPDF   AttachmentType = "pdf"
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentOther AttachmentType = "other"
)

// AttachmentTypeFor maps a MIME type to the attachment category shown in the UI.
func AttachmentTypeFor(mimeType string) AttachmentType {
	switch {
	case mimeType == "application/pdf":
		return AttachmentPDF
	case len(mimeType) > 6 && mimeType[:6] == "audio/":
		return AttachmentAudio
	case len(mimeType) > 6 && mimeType[:6] == "image/":
		return AttachmentImage
	case len(mimeType) > 6 && mimeType[:6] == "video/":
		return AttachmentVideo
	default:
		return AttachmentOther
	}
}

type CreateProjectInput struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// SaleInput is the whole-entity payload used for both creating and replacing a client.
type SaleInput struct {
	ClientName             string     `json:"clientName"`
	PhoneNumber            string     `json:"phoneNumber"`
	ServiceType            string     `json:"serviceType"`
	Status                 SaleStatus `json:"status"`
	Price                  float64    `json:"price"`
	Quantity               int        `json:"quantity"`
	Items                  []SaleItem `json:"items"`
	LeadDate               Date       `json:"leadDate"`
	SentDate               *Date      `json:"sentDate,omitempty"`
	Reminders              []Reminder `json:"reminders"`
	AssignedWorkerIDs      []string   `json:"assignedWorkerIds"`
	TeamInstructions       string     `json:"teamInstructions,omitempty"`
	HasClientModifications bool       `json:"hasClientModifications,omitempty"`
}
