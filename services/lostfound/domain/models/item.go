package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportKind distinguishes lost reports from found reports. Immutable after creation.
type ReportKind string

const (
	KindLost  ReportKind = "LOST"
	KindFound ReportKind = "FOUND"
)

// Opposite returns the other report kind.
func (k ReportKind) Opposite() ReportKind {
	if k == KindLost {
		return KindFound
	}
	return KindLost
}

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	return k == KindLost || k == KindFound
}

// Category is the item category tag used for matching and dashboards.
type Category string

const (
	CategoryDevices     Category = "DEVICES"
	CategoryDocuments   Category = "DOCUMENTS"
	CategoryAccessories Category = "ACCESSORIES"
	CategoryKeys        Category = "KEYS"
	CategoryJewellery   Category = "JEWELLERY"
	CategoryBooks       Category = "BOOKS"
	CategoryOthers      Category = "OTHERS"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryDevices,
	CategoryDocuments,
	CategoryAccessories,
	CategoryKeys,
	CategoryJewellery,
	CategoryBooks,
	CategoryOthers,
}

// HighRiskCategories are surfaced separately on the dashboard while unresolved.
var HighRiskCategories = []Category{CategoryDevices, CategoryKeys, CategoryJewellery}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ItemStatus is the lifecycle state of an Item.
type ItemStatus string

const (
	// StatusOpen is the initial state of a LOST report.
	StatusOpen ItemStatus = "OPEN"
	// StatusPending is the initial state of a FOUND report awaiting verification.
	StatusPending ItemStatus = "PENDING"
	// StatusAvailable means a FOUND item is verified and stored, open for claims.
	StatusAvailable ItemStatus = "AVAILABLE"
	// StatusClaimed means an ownership claim on the item has been approved.
	StatusClaimed ItemStatus = "CLAIMED"
	// StatusReturned means physical custody was handed over. Terminal.
	StatusReturned ItemStatus = "RETURNED"
	// StatusArchived closes the case without a handover. Terminal.
	StatusArchived ItemStatus = "ARCHIVED"
	// StatusDisposed records disposal of an unclaimed item. Terminal.
	StatusDisposed ItemStatus = "DISPOSED"
)

// Terminal reports whether s admits no further lifecycle transitions.
func (s ItemStatus) Terminal() bool {
	return s == StatusReturned || s == StatusArchived || s == StatusDisposed
}

// Item is the core aggregate: one LOST or FOUND report and its lifecycle state.
// Version is the optimistic-concurrency token; every persisted mutation must
// carry the version it read, and a stale write affects zero rows.
type Item struct {
	ID          uuid.UUID
	Kind        ReportKind
	Category    Category
	Description string
	Location    string
	ReportedAt  time.Time
	ReporterID  *uuid.UUID // nil for anonymous or admin-entered reports

	Status          ItemStatus
	StorageLocation string
	AdminRemarks    string
	VerifiedByName  string
	VerifiedAt      *time.Time

	LinkedItemID *uuid.UUID // opposite-kind item resolving this case; at most one
	ImageURL     string

	Version   int
	CreatedAt time.Time
}

// NewItem constructs an Item in its initial lifecycle state
// (OPEN for LOST reports, PENDING for FOUND reports).
func NewItem(kind ReportKind, category Category, description, location string, reportedAt time.Time, reporterID *uuid.UUID, imageURL string) *Item {
	status := StatusOpen
	if kind == KindFound {
		status = StatusPending
	}
	return &Item{
		ID:          uuid.New(),
		Kind:        kind,
		Category:    category,
		Description: description,
		Location:    location,
		ReportedAt:  reportedAt,
		ReporterID:  reporterID,
		Status:      status,
		ImageURL:    imageURL,
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}
}

// LinkedTo reports whether the item is already linked to the given item.
func (i *Item) LinkedTo(other uuid.UUID) bool {
	return i.LinkedItemID != nil && *i.LinkedItemID == other
}

// Claimable reports whether the item can accept new ownership claims.
func (i *Item) Claimable() bool {
	return i.Kind == KindFound && i.Status == StatusAvailable
}

// HandoverEligible reports whether custody transfer may be recorded.
func (i *Item) HandoverEligible() bool {
	return i.Status == StatusAvailable || i.Status == StatusClaimed
}
