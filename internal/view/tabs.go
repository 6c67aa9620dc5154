package view

// Tab identifies one of the encounter detail sections.
type Tab string

const (
	TabDiagnosis      Tab = "diagnosis"
	TabProcedures     Tab = "procedures"
	TabImagingReports Tab = "imagingReports"
	TabOrdersNotes    Tab = "ordersNotes"
	TabHONotes        Tab = "hoNotes"
)

// DefaultTab is the section shown when no tab is selected.
const DefaultTab = TabDiagnosis

// Tabs lists the encounter detail sections in display order.
var Tabs = []Tab{TabDiagnosis, TabProcedures, TabImagingReports, TabOrdersNotes, TabHONotes}

// ActiveTab resolves a tab key from the URL to a valid section. Unknown or
// empty keys fall back to the default so exactly one tab is always active.
func ActiveTab(key string) Tab {
	for _, t := range Tabs {
		if string(t) == key {
			return t
		}
	}
	return DefaultTab
}
