package ioadapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/trxledger/internal/domain"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// EncodeSnapshots writes a header-bearing CSV of snapshots to w, formatting
// every money field to exactly 4 fractional digits (spec.md §6). Row order
// follows the slice's order — callers that need deterministic output should
// sort snaps themselves; the engine guarantees no particular order.
func EncodeSnapshots(w io.Writer, snaps []domain.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputHeader); err != nil {
		return fmt.Errorf("ioadapter: writing header: %w", err)
	}

	for _, s := range snaps {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.FormatFixed(),
			s.Held.FormatFixed(),
			s.Total.FormatFixed(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ioadapter: writing row for client %d: %w", s.Client, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("ioadapter: flushing output: %w", err)
	}
	return nil
}
