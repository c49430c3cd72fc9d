// Package event defines the domain events emitted after table mutations.
// Handlers publish events after the store write succeeds; subscribers
// consume them asynchronously via the event bus.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ref points at one entity touched by an event.
type Ref struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Role       string `json:"role"`
}

// DomainEvent carries the canonical shape of every domain event. TableID
// is empty when the mutation was addressed by row or cell id alone and
// the owning table was not resolved.
type DomainEvent struct {
	ID               string
	EventType        string
	OccurredAt       time.Time
	TableID          string
	AffectedEntities []Ref
	Summary          string
	Category         string // "table", "column", "row", "cell", "import"
	Payload          json.RawMessage
}

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TableCreatedPayload carries event-specific data for TableCreated.
type TableCreatedPayload struct {
	TableID string `json:"table_id"`
	Name    string `json:"name"`
}

func NewTableCreated(p TableCreatedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "table_created",
		OccurredAt: time.Now(),
		TableID:    p.TableID,
		AffectedEntities: []Ref{
			{EntityType: "table", EntityID: p.TableID, Role: "subject"},
		},
		Summary:  fmt.Sprintf("Table %q created", p.Name),
		Category: "table",
		Payload:  mustJSON(p),
	}
}

// ColumnAddedPayload carries event-specific data for ColumnAdded.
type ColumnAddedPayload struct {
	TableID  string `json:"table_id"`
	ColumnID string `json:"column_id"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

func NewColumnAdded(p ColumnAddedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "column_added",
		OccurredAt: time.Now(),
		TableID:    p.TableID,
		AffectedEntities: []Ref{
			{EntityType: "column", EntityID: p.ColumnID, Role: "subject"},
			{EntityType: "table", EntityID: p.TableID, Role: "context"},
		},
		Summary:  fmt.Sprintf("Column %q added to table %s", p.Key, short(p.TableID)),
		Category: "column",
		Payload:  mustJSON(p),
	}
}

// RowAddedPayload carries event-specific data for RowAdded.
type RowAddedPayload struct {
	TableID  string `json:"table_id"`
	RowID    string `json:"row_id"`
	Position int    `json:"position"`
}

func NewRowAdded(p RowAddedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "row_added",
		OccurredAt: time.Now(),
		TableID:    p.TableID,
		AffectedEntities: []Ref{
			{EntityType: "row", EntityID: p.RowID, Role: "subject"},
			{EntityType: "table", EntityID: p.TableID, Role: "context"},
		},
		Summary:  fmt.Sprintf("Row %s added to table %s", short(p.RowID), short(p.TableID)),
		Category: "row",
		Payload:  mustJSON(p),
	}
}

// RowDeletedPayload carries event-specific data for RowDeleted.
type RowDeletedPayload struct {
	RowID string `json:"row_id"`
}

func NewRowDeleted(p RowDeletedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "row_deleted",
		OccurredAt: time.Now(),
		AffectedEntities: []Ref{
			{EntityType: "row", EntityID: p.RowID, Role: "subject"},
		},
		Summary:  fmt.Sprintf("Row %s deleted", short(p.RowID)),
		Category: "row",
		Payload:  mustJSON(p),
	}
}

// CellUpdatedPayload carries event-specific data for CellUpdated.
type CellUpdatedPayload struct {
	RowID    string `json:"row_id"`
	ColumnID string `json:"column_id"`
}

func NewCellUpdated(p CellUpdatedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "cell_updated",
		OccurredAt: time.Now(),
		AffectedEntities: []Ref{
			{EntityType: "row", EntityID: p.RowID, Role: "subject"},
			{EntityType: "column", EntityID: p.ColumnID, Role: "target"},
		},
		Summary:  fmt.Sprintf("Cell (%s, %s) updated", short(p.RowID), short(p.ColumnID)),
		Category: "cell",
		Payload:  mustJSON(p),
	}
}

// BundleImportedPayload carries event-specific data for BundleImported.
// It covers both the normalized bundle and legacy payload import paths.
type BundleImportedPayload struct {
	TableID string `json:"table_id"`
	Name    string `json:"name"`
	Format  string `json:"format"` // "normalized" or "legacy"
	Rows    int    `json:"rows"`
}

func NewBundleImported(p BundleImportedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  "bundle_imported",
		OccurredAt: time.Now(),
		TableID:    p.TableID,
		AffectedEntities: []Ref{
			{EntityType: "table", EntityID: p.TableID, Role: "subject"},
		},
		Summary:  fmt.Sprintf("Imported %s payload %q with %d rows", p.Format, p.Name, p.Rows),
		Category: "import",
		Payload:  mustJSON(p),
	}
}
