package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Decode reads the raw record stream and calls emit for every record that
// maps to an event. Records with a recognized type but the wrong
// optional-field presence are skipped silently, as are unknown types.
// Structural failures (wrong arity, unparseable numbers) abort the stream.
func Decode(r io.Reader, emit func(models.Event)) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return err
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}

		ev, ok, err := convert(cols, record)
		if err != nil {
			return fmt.Errorf("record at line %d: %w", line, err)
		}
		if ok {
			emit(ev)
		}
	}
}

// columns holds the header positions. amount is optional in the layout;
// -1 means the column is missing entirely.
type columns struct {
	typ    int
	client int
	tx     int
	amount int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "type":
			cols.typ = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	if cols.typ < 0 || cols.client < 0 || cols.tx < 0 {
		return cols, fmt.Errorf("header must contain type, client and tx columns, got %v", header)
	}
	return cols, nil
}

func convert(cols columns, record []string) (models.Event, bool, error) {
	typ := strings.TrimSpace(record[cols.typ])

	client64, err := strconv.ParseUint(strings.TrimSpace(record[cols.client]), 10, 16)
	if err != nil {
		return models.Event{}, false, fmt.Errorf("parse client: %w", err)
	}
	tx64, err := strconv.ParseUint(strings.TrimSpace(record[cols.tx]), 10, 32)
	if err != nil {
		return models.Event{}, false, fmt.Errorf("parse tx: %w", err)
	}
	client := models.ClientID(client64)
	tx := models.TxID(tx64)

	var raw string
	if cols.amount >= 0 {
		raw = strings.TrimSpace(record[cols.amount])
	}

	switch typ {
	case "deposit", "withdrawal":
		if raw == "" {
			return models.Event{}, false, nil
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return models.Event{}, false, fmt.Errorf("parse amount: %w", err)
		}
		if typ == "deposit" {
			return models.Deposit(client, tx, amount), true, nil
		}
		return models.Withdrawal(client, tx, amount), true, nil
	case "dispute":
		if raw != "" {
			return models.Event{}, false, nil
		}
		return models.Dispute(client, tx), true, nil
	case "resolve":
		if raw != "" {
			return models.Event{}, false, nil
		}
		return models.Resolve(client, tx), true, nil
	case "chargeback":
		if raw != "" {
			return models.Event{}, false, nil
		}
		return models.Chargeback(client, tx), true, nil
	default:
		return models.Event{}, false, nil
	}
}
