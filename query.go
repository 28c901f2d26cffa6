package auragold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the "all data" export of s.
//
// For instance "$.payload.ledgers[*].name" lists the ledger names. Numbers in
// the result are float64.
func Query(s State, path string, now time.Time) (any, error) {
	var buf bytes.Buffer
	if err := ExportAll(&buf, s, now); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("cannot decode export: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	return v, nil
}
