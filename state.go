package auragold

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Lang is the display language of the application.
type Lang string

const (
	LangEn Lang = "en"
	LangZh Lang = "zh"
)

// ParseLang parses a language, the empty string means unset.
func ParseLang(s string) (Lang, error) {
	switch l := Lang(s); l {
	case "", LangEn, LangZh:
		return l, nil
	default:
		return "", fmt.Errorf("unknown language %q, expected %q or %q", s, LangEn, LangZh)
	}
}

// Theme is the display theme of the application.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme, the empty string means unset.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case "", ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q, expected %q or %q", s, ThemeLight, ThemeDark)
	}
}

// State is everything the application persists: the ledgers and a few settings.
//
// State is a value: functions in this package return a new State and never
// modify the one they receive.
type State struct {
	Ledgers        []Ledger
	ActiveLedgerID string
	Lang           Lang
	Theme          Theme
}

// Store persists a State.
type Store interface {
	// Load returns the stored state, or an empty state if nothing was stored yet.
	Load(ctx context.Context) (State, error)
	// Save replaces the stored state with s.
	Save(ctx context.Context, s State) error
}

// Ledger returns the ledger with the given id.
func (s State) Ledger(id string) (Ledger, bool) {
	i := s.index(id)
	if i < 0 {
		return Ledger{}, false
	}
	return s.Ledgers[i], true
}

// Active returns the active ledger.
func (s State) Active() (Ledger, bool) { return s.Ledger(s.ActiveLedgerID) }

// FindLedger returns the unique ledger whose id or name matches query.
// An exact id match wins over name matches.
func (s State) FindLedger(query string) (Ledger, error) {
	if l, ok := s.Ledger(query); ok {
		return l, nil
	}
	var found []Ledger
	for _, l := range s.Ledgers {
		if strings.EqualFold(l.Name, query) {
			found = append(found, l)
		}
	}
	switch len(found) {
	case 0:
		return Ledger{}, fmt.Errorf("%w: %q", ErrLedgerNotFound, query)
	case 1:
		return found[0], nil
	default:
		return Ledger{}, fmt.Errorf("multiple ledgers named %q, use the ledger id", query)
	}
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Ledgers, func(l Ledger) bool { return l.ID == id })
}

// clone returns a deep copy of s.
func (s State) clone() State {
	s.Ledgers = cloneLedgers(s.Ledgers)
	return s
}

// fixActive makes sure the active ledger id names an existing ledger.
func (s State) fixActive() State {
	if _, ok := s.Active(); ok {
		return s
	}
	s.ActiveLedgerID = ""
	if len(s.Ledgers) > 0 {
		s.ActiveLedgerID = s.Ledgers[0].ID
	}
	return s
}

// ImportMode selects how imported ledgers are combined with the current state.
type ImportMode int

const (
	// AddMode adds a single imported ledger, merging it by its own id.
	AddMode ImportMode = iota
	// MergeMode reconciles imported ledgers with existing ones, see MergeLedgers.
	MergeMode
	// ReplaceMode discards the existing data being imported over.
	ReplaceMode
)

func (m ImportMode) String() string {
	switch m {
	case AddMode:
		return "add"
	case MergeMode:
		return "merge"
	case ReplaceMode:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseImportMode parses an import mode.
func ParseImportMode(s string) (ImportMode, error) {
	switch s {
	case "add":
		return AddMode, nil
	case "merge":
		return MergeMode, nil
	case "replace":
		return ReplaceMode, nil
	default:
		return 0, fmt.Errorf("unknown import mode: %q", s)
	}
}

// ApplyAllImport combines an "all data" import with s.
//
// In ReplaceMode the imported ledgers and settings replace the current ones.
// In any other mode the imported ledgers are merged with the current ones
// and the current settings are kept.
func ApplyAllImport(s State, imp *AllImport, mode ImportMode) State {
	s = s.clone()
	if mode != ReplaceMode {
		s.Ledgers = MergeLedgers(s.Ledgers, imp.Ledgers)
		return s.fixActive()
	}

	s.Ledgers = cloneLedgers(imp.Ledgers)
	if _, ok := s.Ledger(imp.ActiveLedgerID); ok {
		s.ActiveLedgerID = imp.ActiveLedgerID
	}
	if imp.Lang != "" {
		s.Lang = imp.Lang
	}
	if imp.Theme != "" {
		s.Theme = imp.Theme
	}
	return s.fixActive()
}

// ApplyLedgerImport combines a single imported ledger with s.
//
// In AddMode, l is merged by its own id and becomes a new ledger when the id
// is unknown. In MergeMode its records are merged into the target ledger,
// which keeps its name and creation date. In ReplaceMode the target ledger's
// records and name are replaced by l's, keeping the target id and creation date.
// An unknown target returns ErrLedgerNotFound and s is left unchanged.
func ApplyLedgerImport(s State, l Ledger, mode ImportMode, target string) (State, error) {
	if mode == AddMode {
		s = s.clone()
		s.Ledgers = MergeLedgers(s.Ledgers, []Ledger{l})
		return s.fixActive(), nil
	}

	i := s.index(target)
	if i < 0 {
		return s, fmt.Errorf("cannot %s ledger: %w: %q", mode, ErrLedgerNotFound, target)
	}
	s = s.clone()
	current := s.Ledgers[i]
	switch mode {
	case MergeMode:
		in := l
		in.ID = current.ID
		in.Name = current.Name
		in.CreatedAt = current.CreatedAt
		s.Ledgers = MergeLedgers(s.Ledgers, []Ledger{in})
	case ReplaceMode:
		replaced := l.clone()
		replaced.ID = current.ID
		replaced.CreatedAt = current.CreatedAt
		if replaced.Name == "" {
			replaced.Name = current.Name
		}
		s.Ledgers[i] = replaced
	default:
		return s, fmt.Errorf("unsupported import mode %v", mode)
	}
	return s.fixActive(), nil
}

// AddLedger appends a new empty ledger named 'name' and makes it active.
func AddLedger(s State, name string, now time.Time) (State, Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, Ledger{}, fmt.Errorf("cannot create a ledger with an empty name")
	}
	l := Ledger{
		ID:        NewID(now),
		Name:      name,
		CreatedAt: now.UnixMilli(),
		Records:   []TradeRecord{},
	}
	s = s.clone()
	s.Ledgers = append(s.Ledgers, l)
	s.ActiveLedgerID = l.ID
	return s, l, nil
}

// RenameLedger changes the name of ledger 'id'.
func RenameLedger(s State, id, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, fmt.Errorf("cannot rename a ledger to an empty name")
	}
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrLedgerNotFound, id)
	}
	s = s.clone()
	s.Ledgers[i].Name = name
	return s, nil
}

// RemoveLedger deletes ledger 'id'. If it was active, the first remaining ledger becomes active.
func RemoveLedger(s State, id string) (State, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrLedgerNotFound, id)
	}
	s = s.clone()
	s.Ledgers = slices.Delete(s.Ledgers, i, i+1)
	return s.fixActive(), nil
}

// SetActive makes ledger 'id' the active one.
func SetActive(s State, id string) (State, error) {
	if s.index(id) < 0 {
		return s, fmt.Errorf("%w: %q", ErrLedgerNotFound, id)
	}
	s = s.clone()
	s.ActiveLedgerID = id
	return s, nil
}

// AddRecord adds r to ledger 'id', keeping records sorted newest first.
func AddRecord(s State, id string, r TradeRecord) (State, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrLedgerNotFound, id)
	}
	if _, exists := s.Ledgers[i].Record(r.ID); exists {
		return s, fmt.Errorf("record %q already exists in ledger %q", r.ID, id)
	}
	s = s.clone()
	s.Ledgers[i].Records = append(s.Ledgers[i].Records, r)
	sortRecords(s.Ledgers[i].Records)
	return s, nil
}

// RemoveRecord deletes record 'recordID' from ledger 'id'.
func RemoveRecord(s State, id, recordID string) (State, error) {
	i := s.index(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrLedgerNotFound, id)
	}
	j := slices.IndexFunc(s.Ledgers[i].Records, func(r TradeRecord) bool { return r.ID == recordID })
	if j < 0 {
		return s, fmt.Errorf("%w: %q in ledger %q", ErrRecordNotFound, recordID, id)
	}
	s = s.clone()
	s.Ledgers[i].Records = slices.Delete(s.Ledgers[i].Records, j, j+1)
	return s, nil
}
