// Package survey names the OSADA questionnaire: the columns both datasets expose, the numeric
// bands used to group open-ended counts, and the menu catalogue of the report.
package survey

import (
	"fmt"
	"strings"
)

// Source identifies which dataset a column is read from.
type Source int

const (
	Categorical Source = iota
	Numeric
	Derived
)

func (s Source) String() string {
	switch s {
	case Numeric:
		return "numeric"
	case Derived:
		return "derived"
	default:
		return "categorical"
	}
}

// Column is a typed identifier for a survey column. The zero value None means "no column".
type Column int

const (
	None Column = iota
	TaskDifficulty
	HelpfulActivity
	WeeklyTaskHours
	SleepLost
	DisciplineImpact
	Presentations
	NewFriends
	ActivityAfter
	OrgMotivation
	StudentID
	Cohort
	WeeklyTaskHoursBand
	PresentationsBand
	SleepLostBand
	NewFriendsBand
)

type columnInfo struct {
	code   string
	name   string // verbatim header in the source file
	short  string
	source Source
}

var columns = map[Column]columnInfo{
	TaskDifficulty: {
		code:   "q1",
		name:   "1. Dari skala 1–4, seberapa sulit penugasan OSADA menurut Anda?",
		short:  "Task difficulty (1–4)",
		source: Categorical,
	},
	HelpfulActivity: {
		code:   "q2",
		name:   "2. Jenis kegiatan apa yang paling membantu dalam pengembangan diri Anda selama kegiatan OSADA?",
		short:  "Most helpful activity",
		source: Categorical,
	},
	WeeklyTaskHours: {
		code:   "q3",
		name:   "3. Berapa rata-rata waktu yang Anda habiskan per minggu untuk mengerjakan tugas OSADA?",
		short:  "Weekly task hours",
		source: Numeric,
	},
	SleepLost: {
		code:   "q4",
		name:   "4. Berapa total jam tidur Anda yang berkurang per minggu selama mengikuti OSADA?",
		short:  "Sleep lost per week (hours)",
		source: Numeric,
	},
	DisciplineImpact: {
		code:   "q5",
		name:   "5. Sejauh mana OSADA membantu Anda dalam meningkatkan kedisiplinan?",
		short:  "Discipline impact",
		source: Categorical,
	},
	Presentations: {
		code:   "q6",
		name:   "6. Berapa jumlah presentasi atau kesempatan berbicara di depan umum yang Anda lakukan selama OSADA?",
		short:  "Presentations given",
		source: Numeric,
	},
	NewFriends: {
		code:   "q8",
		name:   "8. Seberapa banyak teman baru yang Anda kenal dari pengkaderan OSADA?",
		short:  "New friends made",
		source: Numeric,
	},
	ActivityAfter: {
		code:   "q9",
		name:   "9.  Apakah setelah mengikuti pengkaderan OSADA Anda merasa lebih aktif dalam kegiatan akademik maupun non-akademik di kampus?",
		short:  "Activity after OSADA",
		source: Categorical,
	},
	OrgMotivation: {
		code:   "q10",
		name:   "10.  Apakah OSADA memberikan motivasi tambahan bagi Anda untuk aktif dalam organisasi lain di kampus?",
		short:  "Motivation to join organisations",
		source: Categorical,
	},
	StudentID: {
		code:   "npm",
		name:   "NPM",
		short:  "Student ID",
		source: Categorical,
	},
	Cohort: {
		code:   "cohort",
		name:   "angkatan",
		short:  "Cohort",
		source: Categorical,
	},
	WeeklyTaskHoursBand: {
		code:   "q3-band",
		name:   "Weekly task hours (banded)",
		short:  "Weekly task hours",
		source: Derived,
	},
	PresentationsBand: {
		code:   "q6-band",
		name:   "Presentations given (banded)",
		short:  "Presentations given",
		source: Derived,
	},
	SleepLostBand: {
		code:   "q4-band",
		name:   "Sleep lost per week (banded)",
		short:  "Sleep lost per week",
		source: Derived,
	},
	NewFriendsBand: {
		code:   "q8-band",
		name:   "New friends made (banded)",
		short:  "New friends made",
		source: Derived,
	},
}

// Name returns the column header exactly as it appears in the source file.
func (c Column) Name() string { return columns[c].name }

// Code returns the short identifier used on the command line and in URLs.
func (c Column) Code() string { return columns[c].code }

// Short returns a compact English label for chart axes and menus.
func (c Column) Short() string { return columns[c].short }

// Source reports which dataset holds the column.
func (c Column) Source() Source { return columns[c].source }

// Valid reports whether c is a known, non-None column.
func (c Column) Valid() bool {
	_, ok := columns[c]
	return ok
}

func (c Column) String() string {
	if c == None {
		return "none"
	}
	if !c.Valid() {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return c.Code()
}

// Parse resolves a column from its code (case-insensitive) or its verbatim header.
// An empty string parses to None.
func Parse(s string) (Column, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, nil
	}
	for c, info := range columns {
		if strings.EqualFold(info.code, s) || info.name == s {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown column %q", s)
}

// All returns every known column in declaration order.
func All() []Column {
	out := make([]Column, 0, len(columns))
	for c := TaskDifficulty; c <= NewFriendsBand; c++ {
		out = append(out, c)
	}
	return out
}

// CrosstabChoices lists the categorical questions offered by the categorical-pair view.
func CrosstabChoices() []Column {
	return []Column{TaskDifficulty, HelpfulActivity, DisciplineImpact, ActivityAfter, OrgMotivation}
}
