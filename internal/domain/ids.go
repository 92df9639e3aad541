package domain

import "strconv"

// ClientID identifies the owning account of a transaction stream. Stable
// across the whole run; the zero value is a valid client id.
type ClientID uint16

func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// TxID identifies a single deposit or withdrawal, globally unique across
// the input stream and across event kinds. The engine ignores a deposit or
// withdrawal whose tx id is already in the same client's transaction log,
// whatever the recorded kind; a tx id reused under a different client is
// not detected (see spec.md §1, Non-goals).
type TxID uint32

func (t TxID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
