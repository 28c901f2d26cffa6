package auragold

import (
	"strings"
	"time"
	"unicode"
)

const (
	maxFileNameRunes = 80
	defaultFileName  = "ledger"
)

// SanitizeFileName turns a ledger display name into a string safe to use in a file name.
//
// Characters forbidden on common file systems (\ / : * ? " < > |) are removed,
// runs of white space become a single space, and the result is trimmed and
// truncated to 80 characters. An empty result becomes "ledger".
func SanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.Join(strings.FieldsFunc(name, unicode.IsSpace), " ")
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > maxFileNameRunes {
		name = string(runes[:maxFileNameRunes])
	}
	if name == "" {
		return defaultFileName
	}
	return name
}

// fileStamp is the export timestamp made safe for file names.
func fileStamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(FormatExportTime(t))
}

// AllFileName returns the file name of an "all data" export made at t.
func AllFileName(t time.Time) string {
	return "auragold-all-" + fileStamp(t) + ".json"
}

// LedgerFileName returns the file name of the export of ledger l made at t.
func LedgerFileName(l Ledger, t time.Time) string {
	return "auragold-ledger-" + SanitizeFileName(l.Name) + "-" + fileStamp(t) + ".json"
}
