package services

import (
	"time"

	"github.com/caretrace-ai/caretrace-engine/pkg/ehr"
	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// storeFixture builds a fully indexed store from row slices; nil slices
// become empty tables. oasisLinked controls whether the oasis table exposes
// an episode_id column.
type storeFixture struct {
	diagnoses   []models.Diagnosis
	medications []models.Medication
	vitals      []models.Vital
	notes       []models.Note
	wounds      []models.Wound
	oasis       []models.OasisAssessment
	oasisLinked bool
	adlColumns  []string
}

func (f storeFixture) build() *ehr.Store {
	adl := f.adlColumns
	if adl == nil {
		adl = models.ADLFields
	}
	return &ehr.Store{
		Diagnoses:   ehr.NewTable(ehr.DiagnosesFile, false, f.diagnoses),
		Medications: ehr.NewTable(ehr.MedicationsFile, true, f.medications),
		Vitals:      ehr.NewTable(ehr.VitalsFile, true, f.vitals),
		Notes:       ehr.NewTable(ehr.NotesFile, true, f.notes),
		Wounds:      ehr.NewTable(ehr.WoundsFile, true, f.wounds),
		Oasis:       ehr.NewTable(ehr.OasisFile, f.oasisLinked, f.oasis),
		ADLColumns:  adl,
	}
}
