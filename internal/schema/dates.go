package schema

import (
	"strings"
	"time"
)

// Canonical date renderings. Timestamps keep the wall-clock time of the
// source value; date-only inputs stay date-only.
const (
	ISODateTime = "2006-01-02 15:04:05"
	ISODate     = "2006-01-02"
)

// exportDateLayouts lists the formats seen in real Jira CSV exports,
// which vary with the exporting user's locale (EN and PT-BR).
var exportDateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{"2/Jan/06 3:04 PM", true},  // 10/Dec/25 8:43 AM
	{"2/Jan./06 15:04", true},   // 22/jan./26 10:04
	{"2/Jan/06 15:04", true},    // 19/Dec/25 14:38
	{"2006-01-02 15:04:05", true}, // 2025-12-10 11:44:34.17
	{"2/Jan./06 3:04 PM", true},
	{"2/Jan/06", false},
	{"2/Jan./06", false},
	{"2006-01-02", false},
}

// ptMonths maps PT-BR month abbreviations, as they appear in exports
// from Portuguese-locale accounts, to the English forms time.Parse
// understands. English month names need no entry: time.Parse matches
// them case-insensitively.
var ptMonths = map[string]string{
	"jan": "Jan",
	"fev": "Feb",
	"mar": "Mar",
	"abr": "Apr",
	"mai": "May",
	"jun": "Jun",
	"jul": "Jul",
	"ago": "Aug",
	"set": "Sep",
	"out": "Oct",
	"nov": "Nov",
	"dez": "Dec",
}

// NormalizeExportDate parses a date value from a raw export and renders
// it in the canonical ISO form. The boolean reports whether the value
// was understood: an empty input is fine (empty output, true), while an
// unparseable one yields empty output and false so the caller can count
// it as a row-level diagnostic instead of aborting the run.
func NormalizeExportDate(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", true
	}
	v = translateMonth(v)
	for _, l := range exportDateLayouts {
		t, err := time.Parse(l.layout, v)
		if err != nil {
			continue
		}
		if l.hasTime {
			return t.Format(ISODateTime), true
		}
		return t.Format(ISODate), true
	}
	return "", false
}

// translateMonth rewrites the month token of a "day/month/year" value
// when it is a Portuguese abbreviation. Other values pass through.
func translateMonth(v string) string {
	parts := strings.SplitN(v, "/", 3)
	if len(parts) != 3 {
		return v
	}
	month := parts[1]
	trailing := ""
	if strings.HasSuffix(month, ".") {
		month = strings.TrimSuffix(month, ".")
		trailing = "."
	}
	en, ok := ptMonths[strings.ToLower(month)]
	if !ok {
		return v
	}
	return parts[0] + "/" + en + trailing + "/" + parts[2]
}
