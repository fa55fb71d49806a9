package databank

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidDatabank marks import data that lacks a usable questions mapping.
var ErrInvalidDatabank = eris.New("databank: missing \"questions\" object")

// Import parses an exported databank from JSON. The one hard validation is
// the presence of a questions object; everything else is tolerated as absent.
// The imported databank gets the current schema version and timestamp, the
// same way the settings import does.
func Import(data []byte) (*Databank, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, eris.Wrap(err, "databank: parse import")
	}
	raw, ok := probe["questions"]
	if !ok {
		return nil, ErrInvalidDatabank
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidDatabank
	}

	var db Databank
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, eris.Wrap(err, "databank: decode import")
	}

	db.Version = "1.0"
	db.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return &db, nil
}

// ExportJSON renders the databank as indented JSON with questions in
// insertion order, suitable for the settings export file.
func ExportJSON(db *Databank) ([]byte, error) {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "databank: export")
	}
	return data, nil
}

// PartitionStats counts filled entries per databank partition.
type PartitionStats struct {
	PersonalInfo      int `json:"personal_info"`
	Questions         int `json:"questions"`
	Salary            int `json:"salary"`
	WorkAuthorization int `json:"work_authorization"`
}

// Stats summarizes how much of the databank is filled in.
func Stats(db *Databank) PartitionStats {
	var st PartitionStats
	for _, v := range []string{
		db.PersonalInfo.FullName, db.PersonalInfo.Email, db.PersonalInfo.Phone,
		db.PersonalInfo.Location, db.PersonalInfo.LinkedIn,
	} {
		if v != "" {
			st.PersonalInfo++
		}
	}
	for _, v := range []string{db.Salary.ExpectedSalary, db.Salary.CurrentSalary} {
		if v != "" {
			st.Salary++
		}
	}
	for _, v := range []string{
		db.WorkAuthorization.EligibleToWorkUK,
		db.WorkAuthorization.RequireSponsorship,
		db.WorkAuthorization.NoticePeriod,
	} {
		if v != "" {
			st.WorkAuthorization++
		}
	}
	st.Questions = db.Questions.Len()
	return st
}
