package ioadapter

import (
	"strings"
	"testing"

	"github.com/iho/trxledger/internal/domain"
)

func TestNewDecoder_RejectsBadHeader(t *testing.T) {
	r := strings.NewReader("kind,client,tx,amount\ndeposit,1,1,1.0\n")
	_, err := NewDecoder(r, nil)
	if err == nil {
		t.Fatal("expected header mismatch error")
	}
}

func TestDecoder_ParsesWellFormedRows(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit,1,1,1.0\n" +
		"withdrawal,1,2,0.5\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	dec, err := NewDecoder(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var got []domain.Event
	for {
		ev, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if !ok {
			break
		}
		got = append(got, ev)
	}

	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	if got[0].Kind != domain.EventDeposit || got[0].Amount.FormatFixed() != "1.0000" {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[2].Kind != domain.EventDispute {
		t.Errorf("row 2 kind = %v, want EventDispute", got[2].Kind)
	}
}

type recordingRowTelemetry struct {
	skipped int
}

func (r *recordingRowTelemetry) RowSkipped([]string, error) { r.skipped++ }

func TestDecoder_SkipsMalformedRowsAndContinues(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"bogus,1,2,1.0\n" + // unknown type
		"deposit,1,3,\n" + // missing amount
		"deposit,1,4,-1.0\n" + // negative amount
		"deposit,1,5,2.0\n"

	tel := &recordingRowTelemetry{}
	dec, err := NewDecoder(strings.NewReader(input), tel)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var count int
	for {
		_, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if !ok {
			break
		}
		count++
	}

	if count != 2 {
		t.Errorf("expected 2 well-formed events, got %d", count)
	}
	if tel.skipped != 3 {
		t.Errorf("expected 3 skipped rows, got %d", tel.skipped)
	}
}

func TestDecoder_RejectsAmountOnNonMonetaryEvent(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"dispute,1,1,5.0\n"
	tel := &recordingRowTelemetry{}
	dec, err := NewDecoder(strings.NewReader(input), tel)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	_, ok, err := dec.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if ok {
		t.Fatal("expected row with unexpected amount to be skipped")
	}
	if tel.skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", tel.skipped)
	}
}
