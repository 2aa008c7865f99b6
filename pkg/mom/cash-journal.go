package mom

import (
	"bytes"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

type CashJournalType byte

const (
	CashJournalDeposit CashJournalType = iota
	CashJournalWithdraw

	cashJournalDepositStr  = "deposit"
	cashJournalWithdrawStr = "withdraw"
)

var (
	cashJournalDepositBytes  = []byte(`"deposit"`)
	cashJournalWithdrawBytes = []byte(`"withdraw"`)
)

var cashJournalTypeSet = RegisterCodeSet("cashJournalType", map[string]byte{
	cashJournalDepositStr:  byte(CashJournalDeposit),
	cashJournalWithdrawStr: byte(CashJournalWithdraw),
})

func (ct CashJournalType) String() string {
	return cashJournalTypeSet.NameOf(byte(ct))
}

func (ct CashJournalType) MarshalJSON() ([]byte, error) {
	switch ct {
	case CashJournalDeposit:
		return cashJournalDepositBytes, nil
	case CashJournalWithdraw:
		return cashJournalWithdrawBytes, nil
	}
	return nil, errors.New("invalid cash journal type json conversion: " + strconv.Itoa(int(ct)))
}

func (ct *CashJournalType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, cashJournalDepositBytes) {
		*ct = CashJournalDeposit
		return nil
	}
	if bytes.Equal(data, cashJournalWithdrawBytes) {
		*ct = CashJournalWithdraw
		return nil
	}
	return errors.New("unsupported cash journal type: " + string(data))
}

// CashJournal is a fund transfer entry, both the request payload and the
// confirmed push.
type CashJournal struct {
	JournalID string `json:"journalId,omitempty"`
	FundID    string `json:"fundId"`
	AccountID string `json:"accountId"`

	Amount       decimal.Decimal `json:"amount"`
	CurrencyType string          `json:"currencyType"`
	Type         CashJournalType `json:"type"`
	Remark       string          `json:"remark,omitempty"`

	Timestamp int64 `json:"timestamp"`
	Version   int64 `json:"version"`
}

func (c *CashJournal) momPayload() {}

func (c *CashJournal) UpdateVersion() int64 {
	return atomic.AddInt64(&c.Version, 1)
}

// Clone returns a field-complete copy of the record.
func (c *CashJournal) Clone() *CashJournal {
	cp := *c
	cp.Version = atomic.LoadInt64(&c.Version)
	return &cp
}

func (c *CashJournal) ClonePayload() Payload {
	return c.Clone()
}
