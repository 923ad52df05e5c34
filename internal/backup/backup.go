// Package backup handles the portable forms of the ledger: the JSON
// backup file (exported as expenses.json and accepted back by import)
// and a read-only XLSX report.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"kharcha/internal/core"
)

// Filename is the download name for JSON backups.
const Filename = "expenses.json"

// ErrNotArray rejects import payloads whose top-level value is not a
// JSON array. Nothing is restored in that case.
var ErrNotArray = errors.New("invalid backup file: expected a JSON array")

// Export writes the full record set as a pretty-printed JSON array.
// Exporting and re-importing the payload reproduces the ledger
// id-for-id.
func Export(w io.Writer, records []core.Expense) error {
	if records == nil {
		records = []core.Expense{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Import decodes a backup payload. The only structural requirement is
// that the top-level value is an array; individual entries are not
// validated, matching the restore semantics of ReplaceAll.
func Import(r io.Reader) ([]core.Expense, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrNotArray
	}

	records := make([]core.Expense, 0, len(raw))
	for _, entry := range raw {
		var e core.Expense
		// Money and Date decode leniently; an entry that is not even
		// an object is kept as a zero record rather than aborting.
		_ = json.Unmarshal(entry, &e)
		records = append(records, e)
	}
	return records, nil
}
