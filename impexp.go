package auragold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// this file contains functions to handle the import/export format.
// It should remain human readable, single file and be easy to merge back into
// existing data.

const (
	// ExportSchema tags every export file.
	ExportSchema = "auragold.export"
	// ExportVersion is the version of the export format.
	ExportVersion = 1

	kindAll    = "all"
	kindLedger = "ledger"
)

// AllImport is the normalized content of an "all data" import.
// Optional settings are empty when absent or invalid in the imported file.
type AllImport struct {
	Ledgers        []Ledger
	ActiveLedgerID string
	Lang           Lang
	Theme          Theme
}

// NormalizeAllImport classifies and normalizes an "all data" import.
//
// Two shapes are accepted:
//   - an export envelope of kind "all", whose 'payload.ledgers' is an array of ledgers
//     with optional 'activeLedgerId', 'lang' and 'theme';
//   - a bare array of ledgers, as written by older versions.
//
// A single invalid ledger or record rejects the whole import. Ledgers sharing
// an ID within the import are merged together, see MergeLedgers.
func NormalizeAllImport(v any) (*AllImport, error) {
	if items, ok := AsArray(v); ok {
		ledgers, err := normalizeLedgers(items)
		if err != nil {
			return nil, err
		}
		return &AllImport{Ledgers: MergeLedgers(nil, ledgers)}, nil
	}

	if !isEnvelope(v, kindAll) {
		return nil, &NormalizeError{Reason: "expected an export of all data or an array of ledgers", Err: ErrUnrecognizedImport}
	}
	obj, _ := AsObject(v)
	payload, ok := AsObject(obj["payload"])
	if !ok {
		return nil, invalidField("payload", "object", obj["payload"])
	}
	items, ok := AsArray(payload["ledgers"])
	if !ok {
		return nil, invalidField("payload.ledgers", "array", payload["ledgers"])
	}
	ledgers, err := normalizeLedgers(items)
	if err != nil {
		return nil, at("payload.ledgers", err)
	}

	imp := &AllImport{Ledgers: MergeLedgers(nil, ledgers)}
	// optional settings are dropped silently when invalid.
	imp.ActiveLedgerID, _ = AsString(payload["activeLedgerId"])
	if s, ok := AsString(payload["lang"]); ok && (Lang(s) == LangEn || Lang(s) == LangZh) {
		imp.Lang = Lang(s)
	}
	if s, ok := AsString(payload["theme"]); ok && (Theme(s) == ThemeLight || Theme(s) == ThemeDark) {
		imp.Theme = Theme(s)
	}
	return imp, nil
}

// NormalizeLedgerImport classifies and normalizes a single ledger import.
//
// It accepts an export envelope of kind "ledger" or, failing that, a bare ledger object.
func NormalizeLedgerImport(v any) (Ledger, error) {
	if isEnvelope(v, kindLedger) {
		obj, _ := AsObject(v)
		payload, ok := AsObject(obj["payload"])
		if !ok {
			return Ledger{}, invalidField("payload", "object", obj["payload"])
		}
		l, err := NormalizeLedger(payload["ledger"])
		if err != nil {
			return Ledger{}, at("payload.ledger", err)
		}
		return l, nil
	}
	return NormalizeLedger(v)
}

// DecodeAllImport reads r fully and normalizes it as an "all data" import.
// Errors are *ImportError.
func DecodeAllImport(r io.Reader) (*AllImport, error) {
	v, err := decodeJSON(r)
	if err != nil {
		return nil, err
	}
	imp, err := NormalizeAllImport(v)
	if err != nil {
		return nil, &ImportError{Kind: SchemaMismatch, Err: err}
	}
	return imp, nil
}

// DecodeLedgerImport reads r fully and normalizes it as a single ledger import.
// Errors are *ImportError.
func DecodeLedgerImport(r io.Reader) (Ledger, error) {
	v, err := decodeJSON(r)
	if err != nil {
		return Ledger{}, err
	}
	l, err := NormalizeLedgerImport(v)
	if err != nil {
		return Ledger{}, &ImportError{Kind: SchemaMismatch, Err: err}
	}
	return l, nil
}

// decodeJSON decodes a single JSON value from r.
// Numbers are kept as json.Number so that no precision is lost before coercion.
func decodeJSON(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read import: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ImportError{Kind: MalformedJSON, Err: err}
	}
	// trailing content after the value is malformed too.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected content after the JSON value")
		}
		return nil, &ImportError{Kind: MalformedJSON, Err: err}
	}
	return v, nil
}

func isEnvelope(v any, kind string) bool {
	obj, ok := AsObject(v)
	if !ok {
		return false
	}
	schema, _ := AsString(obj["schema"])
	k, _ := AsString(obj["kind"])
	return schema == ExportSchema && k == kind
}

// ExportAll writes the "all data" export envelope of s to w.
func ExportAll(w io.Writer, s State, now time.Time) error {
	var payload jsonObjectWriter
	payload.Append("ledgers", nonNilLedgers(s.Ledgers)).
		Optional("activeLedgerId", s.ActiveLedgerID).
		Optional("lang", s.Lang).
		Optional("theme", s.Theme)
	return writeEnvelope(w, kindAll, &payload, now)
}

// ExportLedger writes the single ledger export envelope of l to w.
func ExportLedger(w io.Writer, l Ledger, now time.Time) error {
	var payload jsonObjectWriter
	payload.Append("ledger", l)
	return writeEnvelope(w, kindLedger, &payload, now)
}

func writeEnvelope(w io.Writer, kind string, payload *jsonObjectWriter, now time.Time) error {
	var env jsonObjectWriter
	env.Append("schema", ExportSchema).
		Append("version", ExportVersion).
		Append("kind", kind).
		Append("exportedAt", FormatExportTime(now)).
		Append("payload", payload)
	data, err := env.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal %s export: %w", kind, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("cannot indent %s export: %w", kind, err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("cannot write %s export: %w", kind, err)
	}
	return nil
}

// FormatExportTime formats t as an ISO-8601 UTC timestamp with milliseconds.
func FormatExportTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func nonNilLedgers(ls []Ledger) []Ledger {
	if ls == nil {
		return []Ledger{}
	}
	return ls
}
