package ehr

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caretrace-ai/caretrace-engine/pkg/apperrors"
	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// Accepted layouts for date cells. Anything else becomes an absent date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Load reads all six required CSV files from dataDir into a Store.
// A missing file is fatal (wraps apperrors.ErrMissingSourceFile); malformed
// cells within a present row degrade to absent fields and never fail the
// load.
func Load(dataDir string) (*Store, error) {
	store := &Store{}

	diagnoses, err := loadFile(dataDir, DiagnosesFile, func(r record) models.Diagnosis {
		return models.Diagnosis{
			PatientID:   r.intAt("patient_id"),
			Code:        r.stringAt("diagnosis_code"),
			Description: r.stringAt("diagnosis_description"),
		}
	})
	if err != nil {
		return nil, err
	}
	store.Diagnoses = NewTable(DiagnosesFile, false, diagnoses.rows)

	medications, err := loadFile(dataDir, MedicationsFile, func(r record) models.Medication {
		return models.Medication{
			PatientID:      r.intAt("patient_id"),
			EpisodeID:      r.intAt("episode_id"),
			Name:           r.stringAt("medication_name"),
			Frequency:      r.stringAt("frequency"),
			Classification: r.stringAt("classification"),
			Reason:         r.stringAt("reason"),
		}
	})
	if err != nil {
		return nil, err
	}
	store.Medications = NewTable(MedicationsFile, medications.hasColumn("episode_id"), medications.rows)

	vitals, err := loadFile(dataDir, VitalsFile, func(r record) models.Vital {
		return models.Vital{
			PatientID: r.intAt("patient_id"),
			EpisodeID: r.intAt("episode_id"),
			VitalType: r.stringAt("vital_type"),
			Reading:   r.floatAt("reading"),
			MinValue:  r.floatAt("min_value"),
			MaxValue:  r.floatAt("max_value"),
			VisitDate: r.dateAt("visit_date"),
		}
	})
	if err != nil {
		return nil, err
	}
	store.Vitals = NewTable(VitalsFile, vitals.hasColumn("episode_id"), vitals.rows)

	notes, err := loadFile(dataDir, NotesFile, func(r record) models.Note {
		return models.Note{
			PatientID: r.intAt("patient_id"),
			EpisodeID: r.intAt("episode_id"),
			NoteType:  r.stringAt("note_type"),
			NoteText:  r.stringAt("note_text"),
			NoteDate:  r.dateAt("note_date"),
		}
	})
	if err != nil {
		return nil, err
	}
	store.Notes = NewTable(NotesFile, notes.hasColumn("episode_id"), notes.rows)

	wounds, err := loadFile(dataDir, WoundsFile, func(r record) models.Wound {
		return models.Wound{
			PatientID:   r.intAt("patient_id"),
			EpisodeID:   r.intAt("episode_id"),
			Location:    r.stringAt("location"),
			Description: r.stringAt("description"),
			OnsetDate:   r.dateAt("onset_date"),
			VisitDate:   r.dateAt("visit_date"),
		}
	})
	if err != nil {
		return nil, err
	}
	store.Wounds = NewTable(WoundsFile, wounds.hasColumn("episode_id"), wounds.rows)

	oasis, err := loadFile(dataDir, OasisFile, func(r record) models.OasisAssessment {
		return models.OasisAssessment{
			PatientID:      r.intAt("patient_id"),
			EpisodeID:      r.intAt("episode_id"),
			AssessmentType: r.stringAt("assessment_type"),
			AssessmentDate: r.dateAt("assessment_date"),
			Grooming:       r.stringAt("grooming"),
			Bathing:        r.stringAt("bathing"),
			ToiletTransfer: r.stringAt("toilet_transfer"),
			Transfer:       r.stringAt("transfer"),
			Ambulation:     r.stringAt("ambulation"),
		}
	})
	if err != nil {
		return nil, err
	}
	// OASIS exports do not always carry episode linkage.
	store.Oasis = NewTable(OasisFile, oasis.hasColumn("episode_id"), oasis.rows)

	for _, field := range models.ADLFields {
		if oasis.hasColumn(field) {
			store.ADLColumns = append(store.ADLColumns, field)
		}
	}

	return store, nil
}

// record is one parsed CSV row together with its file's header layout.
type record struct {
	columns map[string]int
	cells   []string
}

func (r record) stringAt(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r record) intAt(column string) *int {
	s := r.stringAt(column)
	if s == "" {
		return nil
	}
	// Exports sometimes serialize ids as "1001.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		v := int(f)
		return &v
	}
	return nil
}

func (r record) floatAt(column string) *float64 {
	s := r.stringAt(column)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func (r record) dateAt(column string) *time.Time {
	s := r.stringAt(column)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

type fileResult[T any] struct {
	columns map[string]int
	rows    []T
}

func (f fileResult[T]) hasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

func loadFile[T any](dataDir, file string, parse func(record) T) (fileResult[T], error) {
	var result fileResult[T]

	path := filepath.Join(dataDir, file)
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, fmt.Errorf("%w: %s", apperrors.ErrMissingSourceFile, path)
		}
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	reader.FieldsPerRecord = -1 // ragged rows degrade to absent fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		result.columns = map[string]int{}
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("read %s header: %w", file, err)
	}

	result.columns = make(map[string]int, len(header))
	for i, name := range header {
		result.columns[strings.TrimSpace(name)] = i
	}

	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable lines rather than failing the whole load.
			continue
		}
		result.rows = append(result.rows, parse(record{columns: result.columns, cells: cells}))
	}

	return result, nil
}
