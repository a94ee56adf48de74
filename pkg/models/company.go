package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
)

// Company is one index constituent as persisted.
type Company struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IndexName  string             `bson:"index_name" json:"index_name"`
	Ticker     string             `bson:"ticker" json:"ticker"`
	Company    string             `bson:"company" json:"company"`
	Sector     string             `bson:"sector,omitempty" json:"sector,omitempty"`
	Country    string             `bson:"country,omitempty" json:"country,omitempty"`
	IngestedAt time.Time          `bson:"ingested_at" json:"ingested_at"`
}

// FromRecord lifts a canonical extraction record into its persisted form.
func FromRecord(indexName string, rec extract.CanonicalRecord, at time.Time) Company {
	return Company{
		IndexName:  indexName,
		Ticker:     rec.Ticker,
		Company:    rec.Company,
		Sector:     rec.Sector,
		Country:    rec.Country,
		IngestedAt: at,
	}
}

// IngestReport is the event published after every full registry run.
type IngestReport struct {
	RunAt   time.Time         `json:"run_at"`
	Report  extract.RunReport `json:"report"`
	Sources []SourceOutcome   `json:"sources"`
}

// SourceOutcome is the per-source slice of an IngestReport.
type SourceOutcome struct {
	Source  string                    `json:"source"`
	Status  extract.Status            `json:"status"`
	Records int                       `json:"records"`
	Issues  []extract.ValidationIssue `json:"issues,omitempty"`
	Error   string                    `json:"error,omitempty"`
}
