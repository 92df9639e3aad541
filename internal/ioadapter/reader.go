// Package ioadapter holds the external collaborators spec.md §1 explicitly
// scopes out of the core: the CSV row decoder and the CSV snapshot encoder.
// Neither package knows anything about the dispute state machine; they only
// translate between text rows and domain.Event / domain.Snapshot values.
package ioadapter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/trxledger/internal/domain"
)

var expectedHeader = []string{"type", "client", "tx", "amount"}

// RowTelemetry observes a malformed input row that the decoder skipped
// (spec.md §7, "row-level malformed input"). It is a distinct interface
// from engine.Telemetry — one watches CSV parsing, the other watches the
// state machine — grounded in the teacher's own separation of transport
// and business-logic observability.
type RowTelemetry interface {
	RowSkipped(row []string, reason error)
}

// NopRowTelemetry discards every observation.
type NopRowTelemetry struct{}

func (NopRowTelemetry) RowSkipped([]string, error) {}

// ErrBadHeader is returned when the input's header line doesn't match the
// expected `type,client,tx,amount` columns — an I/O-adjacent structural
// failure per spec.md §6/§7, distinct from a per-row parse failure.
var ErrBadHeader = errors.New("ioadapter: unexpected CSV header")

// Decoder turns a header-bearing CSV stream into domain.Event values,
// skipping (and reporting through RowTelemetry) any row whose fields fail
// to parse — spec.md §7's row-level malformed-input handling. A row that
// is not valid CSV for this layout (wrong field count, bad quoting) is not
// skipped; Next returns it as an error.
type Decoder struct {
	r   *csv.Reader
	tel RowTelemetry
}

// NewDecoder validates the header line and returns a ready Decoder. An I/O
// error or a header mismatch here aborts the whole run (spec.md §7).
func NewDecoder(r io.Reader, tel RowTelemetry) (*Decoder, error) {
	if tel == nil {
		tel = NopRowTelemetry{}
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ioadapter: reading header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expectedHeader[i] {
			return nil, fmt.Errorf("%w: got %v", ErrBadHeader, header)
		}
	}

	return &Decoder{r: cr, tel: tel}, nil
}

// Next returns the next well-formed event. ok is false at end of stream. A
// non-nil error is an unrecoverable read failure (spec.md §7, "I/O failure
// on input") or a CSV structure error from the underlying reader, such as
// a row without exactly four fields. A row with four fields whose values
// fail to parse is skipped and reported instead.
func (d *Decoder) Next() (ev domain.Event, ok bool, err error) {
	for {
		record, rerr := d.r.Read()
		if rerr == io.EOF {
			return domain.Event{}, false, nil
		}
		if rerr != nil {
			return domain.Event{}, false, fmt.Errorf("ioadapter: reading row: %w", rerr)
		}

		ev, perr := parseRow(record)
		if perr != nil {
			d.tel.RowSkipped(record, perr)
			continue
		}
		return ev, true, nil
	}
}

func parseRow(record []string) (domain.Event, error) {
	fields := make([]string, len(record))
	for i, f := range record {
		fields[i] = strings.TrimSpace(f)
	}

	kind, err := parseKind(fields[0])
	if err != nil {
		return domain.Event{}, err
	}

	client, err := parseClient(fields[1])
	if err != nil {
		return domain.Event{}, err
	}

	tx, err := parseTx(fields[2])
	if err != nil {
		return domain.Event{}, err
	}

	ev := domain.Event{Kind: kind, Client: client, Tx: tx}

	switch kind {
	case domain.EventDeposit, domain.EventWithdrawal:
		if fields[3] == "" {
			return domain.Event{}, fmt.Errorf("ioadapter: %s row missing amount", fields[0])
		}
		amount, err := domain.ParseAmount(fields[3])
		if err != nil {
			return domain.Event{}, fmt.Errorf("ioadapter: parsing amount: %w", err)
		}
		if !amount.IsPositive() {
			return domain.Event{}, fmt.Errorf("ioadapter: %w: amount must be > 0", domain.ErrInvalidAmount)
		}
		ev.Amount = amount
	default:
		if fields[3] != "" {
			return domain.Event{}, fmt.Errorf("ioadapter: %s row must not carry an amount", fields[0])
		}
	}

	return ev, nil
}

func parseKind(s string) (domain.EventKind, error) {
	switch strings.ToLower(s) {
	case "deposit":
		return domain.EventDeposit, nil
	case "withdrawal":
		return domain.EventWithdrawal, nil
	case "dispute":
		return domain.EventDispute, nil
	case "resolve":
		return domain.EventResolve, nil
	case "chargeback":
		return domain.EventChargeback, nil
	default:
		return 0, fmt.Errorf("ioadapter: unknown event type %q", s)
	}
}

func parseClient(s string) (domain.ClientID, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("ioadapter: parsing client id: %w", err)
	}
	return domain.ClientID(n), nil
}

func parseTx(s string) (domain.TxID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("ioadapter: parsing tx id: %w", err)
	}
	return domain.TxID(n), nil
}
