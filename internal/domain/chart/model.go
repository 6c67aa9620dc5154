package chart

import (
	"time"

	"github.com/chartview/chartview/internal/platform/sanitize"
	"github.com/chartview/chartview/pkg/format"
)

// DemographicsRow is the raw demographics projection shared by the chart and
// encounter detail pages.
type DemographicsRow struct {
	PatientNum     int64      `db:"patient_num"`
	BirthDate      *time.Time `db:"birth_date_shifted"`
	GenderIdentity *string    `db:"gender_identity"`
	Race           *string    `db:"race"`
	Ethnicity      *string    `db:"ethnicity"`
	StateCode      *string    `db:"state_c"`
	Zip3           *string    `db:"zip3"`
	PCPName        *string    `db:"pcp_name"`
}

// EncounterRow is one element of the aggregated encounters array. Timestamp
// columns arrive as text cast in SQL, so fields stay raw strings until the
// reshape step formats them.
type EncounterRow struct {
	EncounterNum   int64  `json:"encounter_num"`
	ContactDate    string `json:"contact_date"`
	EncTypeName    string `json:"enc_type_name"`
	VisitProvName  string `json:"visit_prov_name"`
	DepartmentName string `json:"department_name"`
	NoteCount      int    `json:"note_count"`
}

// ChartRow is the single-query result behind the patient chart page.
type ChartRow struct {
	DemographicsRow
	Encounters []EncounterRow
}

type DiagnosisRow struct {
	DxName   string `json:"dx_name"`
	DxType   string `json:"dx_type"`
	DxSource string `json:"dx_source"`
	DxDate   string `json:"dx_date"`
}

type ProcedureRow struct {
	OrderProcID int64  `json:"order_proc_id"`
	ProcSource  string `json:"proc_source"`
	ProcCode    string `json:"proc_code"`
	ProcName    string `json:"proc_name"`
	OrderType   string `json:"order_type"`
	ProvName    string `json:"prov_name"`
}

type OrderNoteRow struct {
	OrderProcID       int64  `json:"order_proc_id"`
	OrderType         string `json:"order_type"`
	SpecimenTakenTime string `json:"specimen_taken_time"`
	ContactDate       string `json:"contact_date"`
	NoteText          string `json:"note_text"`
}

type ImagingReportRow struct {
	OrderProcID       int64  `json:"order_proc_id"`
	OrderType         string `json:"order_type"`
	SpecimenTakenTime string `json:"specimen_taken_time"`
	ImpressionDate    string `json:"impression_date"`
	NoteText          string `json:"note_text"`
}

type HNONoteRow struct {
	NoteNum     int64  `json:"note_num"`
	ContactDate string `json:"contact_date"`
	NoteType    string `json:"note_type"`
	NoteText    string `json:"note_text"`
}

// EncounterDetailRow is the single-query result behind the encounter page.
type EncounterDetailRow struct {
	DemographicsRow
	Diagnoses      []DiagnosisRow
	Procedures     []ProcedureRow
	ImagingReports []ImagingReportRow
	OrdersNotes    []OrderNoteRow
	HONotes        []HNONoteRow
}

// Demographics is the patient header view model shown on the chart and
// encounter pages.
type Demographics struct {
	ID        int64  `json:"id"`
	DOB       string `json:"dob"`
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	Race      string `json:"race"`
	Ethnicity string `json:"ethnicity"`
	Zip       string `json:"zip"`
	PCP       string `json:"pcp"`
}

// EncounterSummary is one row of the chart page's encounter table.
type EncounterSummary struct {
	EncounterID    int64  `json:"encounterId"`
	EncounterName  string `json:"encounterName"`
	EncounterDate  string `json:"encounterDate"`
	ProviderName   string `json:"providerName"`
	DepartmentName string `json:"departmentName"`
	NoteCount      int    `json:"noteCount"`
}

type Diagnosis struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

type Procedure struct {
	OrderID      int64  `json:"orderId"`
	Source       string `json:"source"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	OrderType    string `json:"orderType"`
	ProviderName string `json:"providerName"`
}

// NoteHTML carries the sanitized body for the note overlay; NotePreview is
// the plain-text snippet shown in the section table itself.
type OrderNote struct {
	OrderID           int64  `json:"orderId"`
	OrderType         string `json:"orderType"`
	SpecimenTakenTime string `json:"specimenTakenTime"`
	ContactDate       string `json:"contactDate"`
	NoteHTML          string `json:"noteHtml"`
	NotePreview       string `json:"notePreview"`
}

type ImagingReport struct {
	OrderID           int64  `json:"orderId"`
	OrderType         string `json:"orderType"`
	SpecimenTakenTime string `json:"specimenTakenTime"`
	ImpressionDate    string `json:"impressionDate"`
	NoteHTML          string `json:"noteHtml"`
	NotePreview       string `json:"notePreview"`
}

type HNONote struct {
	NoteID      int64  `json:"noteId"`
	ContactDate string `json:"contactDate"`
	NoteType    string `json:"noteType"`
	NoteHTML    string `json:"noteHtml"`
	NotePreview string `json:"notePreview"`
}

// timestampLayouts covers the text casts produced by the aggregate queries
// plus plain dates.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// longDate formats a raw timestamp string for display, falling back to the
// raw value when it does not parse.
func longDate(s string) string {
	if t, ok := parseTimestamp(s); ok {
		return format.LongDate(t)
	}
	return s
}

func monthDate(s string) string {
	if t, ok := parseTimestamp(s); ok {
		return format.MonthDate(t)
	}
	return s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// previewRunes caps the plain-text snippet shown in section tables.
const previewRunes = 140

func notePreview(raw string) string {
	text := sanitize.NoteText(raw)
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes]) + "..."
}

// Demographics reshapes the raw demographics row. DOB uses the slash form
// that the patient header shows next to the age.
func (r *DemographicsRow) Demographics(now time.Time) Demographics {
	d := Demographics{
		ID:        r.PatientNum,
		Sex:       strVal(r.GenderIdentity),
		Race:      strVal(r.Race),
		Ethnicity: strVal(r.Ethnicity),
		Zip:       strVal(r.StateCode) + strVal(r.Zip3),
		PCP:       strVal(r.PCPName),
	}
	if r.BirthDate != nil {
		d.DOB = format.SlashDate(*r.BirthDate)
		d.Age = format.Age(*r.BirthDate, now)
	}
	return d
}

// Summaries reshapes the aggregated encounter rows. The result is never nil
// so the payload always carries a JSON array.
func (r *ChartRow) Summaries() []EncounterSummary {
	out := make([]EncounterSummary, 0, len(r.Encounters))
	for _, e := range r.Encounters {
		out = append(out, EncounterSummary{
			EncounterID:    e.EncounterNum,
			EncounterName:  e.EncTypeName,
			EncounterDate:  longDate(e.ContactDate),
			ProviderName:   e.VisitProvName,
			DepartmentName: e.DepartmentName,
			NoteCount:      e.NoteCount,
		})
	}
	return out
}

func (r *EncounterDetailRow) DiagnosisList() []Diagnosis {
	out := make([]Diagnosis, 0, len(r.Diagnoses))
	for _, d := range r.Diagnoses {
		out = append(out, Diagnosis{
			Name:   d.DxName,
			Type:   d.DxType,
			Source: d.DxSource,
			Date:   monthDate(d.DxDate),
		})
	}
	return out
}

func (r *EncounterDetailRow) ProcedureList() []Procedure {
	out := make([]Procedure, 0, len(r.Procedures))
	for _, p := range r.Procedures {
		out = append(out, Procedure{
			OrderID:      p.OrderProcID,
			Source:       p.ProcSource,
			Code:         p.ProcCode,
			Name:         p.ProcName,
			OrderType:    p.OrderType,
			ProviderName: p.ProvName,
		})
	}
	return out
}

func (r *EncounterDetailRow) OrderNoteList() []OrderNote {
	out := make([]OrderNote, 0, len(r.OrdersNotes))
	for _, n := range r.OrdersNotes {
		out = append(out, OrderNote{
			OrderID:           n.OrderProcID,
			OrderType:         n.OrderType,
			SpecimenTakenTime: longDate(n.SpecimenTakenTime),
			ContactDate:       longDate(n.ContactDate),
			NoteHTML:          sanitize.NoteHTML(n.NoteText),
			NotePreview:       notePreview(n.NoteText),
		})
	}
	return out
}

func (r *EncounterDetailRow) ImagingReportList() []ImagingReport {
	out := make([]ImagingReport, 0, len(r.ImagingReports))
	for _, n := range r.ImagingReports {
		out = append(out, ImagingReport{
			OrderID:           n.OrderProcID,
			OrderType:         n.OrderType,
			SpecimenTakenTime: longDate(n.SpecimenTakenTime),
			ImpressionDate:    longDate(n.ImpressionDate),
			NoteHTML:          sanitize.NoteHTML(n.NoteText),
			NotePreview:       notePreview(n.NoteText),
		})
	}
	return out
}

func (r *EncounterDetailRow) HNONoteList() []HNONote {
	out := make([]HNONote, 0, len(r.HONotes))
	for _, n := range r.HONotes {
		out = append(out, HNONote{
			NoteID:      n.NoteNum,
			ContactDate: longDate(n.ContactDate),
			NoteType:    n.NoteType,
			NoteHTML:    sanitize.NoteHTML(n.NoteText),
			NotePreview: notePreview(n.NoteText),
		})
	}
	return out
}
