package entity

import "encoding/json"

// RelationshipTypeConcept tags relationship entries whose embedded payload
// carries the workshop concept assignment.
const RelationshipTypeConcept = "WORKSHOP_CONCEPT"

type Workshop struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Street        *string        `json:"street"`
	ZipCode       string         `json:"zip_code"`
	City          string         `json:"city"`
	Phone         *string        `json:"phone"`
	Email         *string        `json:"email"`
	Website       *string        `json:"website"`
	Relationships []Relationship `json:"relationships"`
}

// Relationship is a loosely-typed link attached to a workshop record.
// Data holds an embedded JSON document whose shape depends on Type.
type Relationship struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type conceptPayload struct {
	Concept string `json:"concept"`
}

// Concepts extracts the concept names assigned to the workshop from its
// relationship entries. Entries with malformed embedded JSON are skipped;
// they never fail the whole record.
func (w *Workshop) Concepts() []string {
	var concepts []string
	for _, rel := range w.Relationships {
		if rel.Type != RelationshipTypeConcept {
			continue
		}
		var payload conceptPayload
		if err := json.Unmarshal([]byte(rel.Data), &payload); err != nil {
			continue
		}
		if payload.Concept != "" {
			concepts = append(concepts, payload.Concept)
		}
	}
	return concepts
}

type ManagementChange struct {
	CompanyName string  `json:"company_name"`
	City        string  `json:"city"`
	ZipCode     *string `json:"zip_code"`
	NewManager  string  `json:"new_manager"`
	OldManager  *string `json:"old_manager"`
	ChangeDate  string  `json:"change_date"`
}
