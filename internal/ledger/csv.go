package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/id"
	"github.com/taxit-dev/taxit/internal/model"
)

// Header is the CSV header of an exported journal.
const Header = "entry_id,period,account_id,description,amount,beneficiary,counterparty,batch_id"

const (
	numFields  = 8
	colEntryID = 0
	colPeriod  = 1
	colAcctID  = 2
	colDesc    = 3
	colAmount  = 4
	colBenef   = 5
	colCparty  = 6
	colBatchID = 7
)

// WriteEntries writes entries to a journal CSV writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEntries reads all entries from a journal CSV reader.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colPeriod] = strconv.Itoa(e.Period)
	row[colAcctID] = strconv.Itoa(int(e.AccountID))
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.String()
	row[colBenef] = string(e.Beneficiary)
	if e.Counterparty != 0 {
		row[colCparty] = strconv.Itoa(int(e.Counterparty))
	}
	row[colBatchID] = e.BatchID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry. Seq is recovered from the ID.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	period, err := strconv.Atoi(record[colPeriod])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing period %q: %w", record[colPeriod], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var counterparty int
	if record[colCparty] != "" {
		counterparty, err = strconv.Atoi(record[colCparty])
		if err != nil {
			return model.Entry{}, fmt.Errorf("parsing counterparty %q: %w", record[colCparty], err)
		}
	}

	e := model.Entry{
		ID:           record[colEntryID],
		Period:       period,
		AccountID:    model.AccountID(accountID),
		Description:  record[colDesc],
		Amount:       amount,
		Beneficiary:  model.OwnerID(record[colBenef]),
		Counterparty: model.AccountID(counterparty),
		BatchID:      record[colBatchID],
	}
	if _, seq, err := id.ParseEntryID(e.ID); err == nil {
		e.Seq = seq
	}
	return e, nil
}
