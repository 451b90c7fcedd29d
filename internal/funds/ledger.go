package funds

import (
	"errors"
	"sync"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCreditRefused     = errors.New("recipient refuses funds")
)

// Ledger tracks balances in the venue's native value unit. It stands in for
// transaction-attached value: an operation's payment is debited from the
// caller's account at the moment the operation accepts it.
type Ledger interface {
	Deposit(account string, amount uint64)
	Balance(account string) uint64

	// Transfer moves amount between accounts, failing closed on
	// insufficient balance or a recipient that refuses credits.
	Transfer(from, to string, amount uint64) error

	// RefuseCredits marks an account as rejecting incoming transfers,
	// the way a contract recipient can reject attached value.
	RefuseCredits(account string, refuse bool)
}

type ledger struct {
	mu       sync.Mutex
	balances map[string]uint64
	refusing map[string]bool
}

func NewLedger() Ledger {
	return &ledger{
		balances: make(map[string]uint64),
		refusing: make(map[string]bool),
	}
}

func (l *ledger) Deposit(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] += amount
}

func (l *ledger) Balance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[account]
}

func (l *ledger) Transfer(from, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return ErrInsufficientFunds
	}
	if l.refusing[to] {
		return ErrCreditRefused
	}

	l.balances[from] -= amount
	l.balances[to] += amount

	return nil
}

func (l *ledger) RefuseCredits(account string, refuse bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refusing[account] = refuse
}
