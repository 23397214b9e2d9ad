package archive

import (
	"errors"
	"time"

	"lankasabha.org/council-web/internal/format"
)

// ErrUnknownSection is returned for section ids outside the fixed set.
var ErrUnknownSection = errors.New("archive: unknown section")

// Years are the selectable record years, newest first.
var Years = []int{2024, 2023, 2022, 2021, 2020}

// Section groups yearly records under a stable id used in markup.
type Section struct {
	ID       string
	LabelKey string
}

// Sections is the fixed set of historical record sections.
var Sections = []Section{
	{ID: "reports", LabelKey: "archive.reports"},
	{ID: "budgets", LabelKey: "archive.budgets"},
}

// Entry is one published record within a section year.
type Entry struct {
	TitleKey  string
	File      string // page identifier of the published document
	Published time.Time
	AmountLKR int64 // minor units; zero when not a budget line
}

// EntryView is the render-ready shape of an Entry.
type EntryView struct {
	TitleKey  string
	Href      string
	Published string
	Amount    string
}

// YearOption marks one selectable year control.
type YearOption struct {
	Year   int
	Active bool
}

// View is the render model for a section with one visible year.
type View struct {
	Section  Section
	Year     int
	Years    []YearOption
	Entries  []EntryView
	LabelKey string
}

// DefaultYear is the year shown before any selection.
func DefaultYear() int { return Years[0] }

// ValidYear reports whether y is in the fixed year set.
func ValidYear(y int) bool {
	for _, yr := range Years {
		if yr == y {
			return true
		}
	}
	return false
}

// Build returns the view for sectionID showing exactly the given year's
// entries, with the matching year control marked active. Years outside the
// fixed set degrade to the default year.
func Build(sectionID string, year int, lang string) (View, error) {
	var sec Section
	found := false
	for _, s := range Sections {
		if s.ID == sectionID {
			sec = s
			found = true
			break
		}
	}
	if !found {
		return View{}, ErrUnknownSection
	}
	if !ValidYear(year) {
		year = DefaultYear()
	}

	v := View{Section: sec, Year: year, LabelKey: sec.LabelKey}
	for _, y := range Years {
		v.Years = append(v.Years, YearOption{Year: y, Active: y == year})
	}
	for _, e := range records[sec.ID][year] {
		ev := EntryView{
			TitleKey:  e.TitleKey,
			Href:      "/?page=" + e.File + "&lang=" + lang,
			Published: format.FmtDate(e.Published, lang),
		}
		if e.AmountLKR != 0 {
			ev.Amount = format.FmtCurrency(e.AmountLKR, "LKR", lang)
		}
		v.Entries = append(v.Entries, ev)
	}
	return v, nil
}

// records holds the published archive index. Content bodies live under
// pages/{lang}/; only the index is compiled in.
var records = map[string]map[int][]Entry{
	"reports": {
		2024: {
			{TitleKey: "archive.reports.annual", File: "annual-report-2024", Published: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
			{TitleKey: "archive.reports.audit", File: "audit-2024", Published: time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)},
		},
		2023: {
			{TitleKey: "archive.reports.annual", File: "annual-report-2023", Published: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
		},
		2022: {
			{TitleKey: "archive.reports.annual", File: "annual-report-2022", Published: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		},
		2021: {
			{TitleKey: "archive.reports.annual", File: "annual-report-2021", Published: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)},
		},
		2020: {
			{TitleKey: "archive.reports.annual", File: "annual-report-2020", Published: time.Date(2021, 4, 2, 0, 0, 0, 0, time.UTC)},
		},
	},
	"budgets": {
		2024: {
			{TitleKey: "archive.budgets.approved", File: "budget-2024", Published: time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), AmountLKR: 18_450_000_00},
		},
		2023: {
			{TitleKey: "archive.budgets.approved", File: "budget-2023", Published: time.Date(2022, 11, 28, 0, 0, 0, 0, time.UTC), AmountLKR: 16_920_000_00},
		},
		2022: {
			{TitleKey: "archive.budgets.approved", File: "budget-2022", Published: time.Date(2021, 11, 25, 0, 0, 0, 0, time.UTC), AmountLKR: 15_300_000_00},
		},
		2021: {
			{TitleKey: "archive.budgets.approved", File: "budget-2021", Published: time.Date(2020, 11, 27, 0, 0, 0, 0, time.UTC), AmountLKR: 14_780_000_00},
		},
		2020: {
			{TitleKey: "archive.budgets.approved", File: "budget-2020", Published: time.Date(2019, 11, 29, 0, 0, 0, 0, time.UTC), AmountLKR: 13_640_000_00},
		},
	},
}
