package sdk

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Contract is anything deployed on the host under a fixed address.
type Contract interface {
	ContractAddress() common.Address
}

// ValueReceiver is implemented by contracts that want a say when native
// value arrives. Returning an error bounces the transfer and with it the
// surrounding call. The callback runs while the sending call is still on
// the stack, so this is the one place reentrancy can happen.
type ValueReceiver interface {
	ReceiveValue(env Env, amount *big.Int) error
}

// Host is the execution environment the modules run inside: one state
// store, native coin balances, a directory of deployed contracts and a
// logical clock. Calls execute one at a time; the Host is not safe for
// concurrent use.
type Host struct {
	state     *MemState
	balances  map[common.Address]*big.Int
	contracts map[common.Address]Contract
	now       int64
	txCounter uint64
}

// NewHost creates a host whose clock starts at the given unix time.
// Example: sdk.NewHost(1_700_000_000)
func NewHost(start int64) *Host {
	return &Host{
		state:     NewMemState(),
		balances:  make(map[common.Address]*big.Int),
		contracts: make(map[common.Address]Contract),
		now:       start,
	}
}

func (h *Host) State() State {
	return h.state
}

// Now returns the current logical clock in unix seconds.
func (h *Host) Now() int64 {
	return h.now
}

// AdvanceTime moves the clock forward, e.g. to let a voting window elapse.
func (h *Host) AdvanceTime(secs int64) {
	h.now += secs
}

// Deploy puts a contract into the address directory. Zero and already
// occupied addresses are rejected.
func (h *Host) Deploy(c Contract) error {
	addr := c.ContractAddress()
	if addr == (common.Address{}) {
		return fmt.Errorf("deploy: zero address")
	}
	if _, taken := h.contracts[addr]; taken {
		return fmt.Errorf("deploy: address %s already in use", addr.Hex())
	}
	h.contracts[addr] = c
	return nil
}

// ContractAt resolves an address to its deployed contract, nil when empty.
func (h *Host) ContractAt(addr common.Address) Contract {
	return h.contracts[addr]
}

// Mint credits native coin out of thin air. Genesis/test funding only.
func (h *Host) Mint(addr common.Address, amount *big.Int) {
	h.credit(addr, amount)
}

// BalanceOf returns a copy of the native coin balance for addr.
func (h *Host) BalanceOf(addr common.Address) *big.Int {
	if bal, ok := h.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// NewEnv builds a call environment for sender with no value allowance.
func (h *Host) NewEnv(sender common.Address) Env {
	return Env{Sender: sender, Value: new(big.Int), Time: h.now, TxID: h.nextTxID()}
}

// NewPayableEnv builds a call environment that allows the callee to draw up
// to value from the sender. The coin stays with the sender until the callee
// actually draws it.
func (h *Host) NewPayableEnv(sender common.Address, value *big.Int) Env {
	return Env{Sender: sender, Value: new(big.Int).Set(value), Time: h.now, TxID: h.nextTxID()}
}

func (h *Host) nextTxID() string {
	h.txCounter++
	return fmt.Sprintf("tx-%06d", h.txCounter)
}

// Execute runs one top-level call with all-or-nothing semantics: if fn
// returns an error, every state write and balance movement it made is
// unwound and the error is returned untouched.
func (h *Host) Execute(fn func() error) error {
	snap := h.state.Snapshot()
	balSnap := make(map[common.Address]*big.Int, len(h.balances))
	for addr, bal := range h.balances {
		balSnap[addr] = new(big.Int).Set(bal)
	}
	if err := fn(); err != nil {
		h.state.RevertTo(snap)
		h.balances = balSnap
		return err
	}
	return nil
}

// Draw moves native coin from the call's sender to a recipient, within the
// allowance the sender granted through the env. The allowance shrinks with
// every draw so a callee cannot pull more than it was offered.
func (h *Host) Draw(env Env, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("draw: negative amount")
	}
	if env.Value == nil || env.Value.Cmp(amount) < 0 {
		return fmt.Errorf("draw: amount exceeds allowed value")
	}
	if err := h.move(env, env.Sender, to, amount); err != nil {
		return err
	}
	env.Value.Sub(env.Value, amount)
	return nil
}

// Transfer lets a contract send coin it already holds towards any address.
func (h *Host) Transfer(env Env, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("transfer: negative amount")
	}
	return h.move(env, from, to, amount)
}

// move debits, credits and then hands control to the recipient's
// ReceiveValue hook if it has one. Reentrancy into module code starts here.
func (h *Host) move(env Env, from, to common.Address, amount *big.Int) error {
	bal := h.BalanceOf(from)
	if bal.Cmp(amount) < 0 {
		return fmt.Errorf("transfer: insufficient balance at %s", from.Hex())
	}
	h.debit(from, amount)
	h.credit(to, amount)
	if c := h.contracts[to]; c != nil {
		if recv, ok := c.(ValueReceiver); ok {
			if err := recv.ReceiveValue(Env{Sender: from, Value: new(big.Int), Time: h.now, TxID: env.TxID}, amount); err != nil {
				// a bounced transfer leaves both balances untouched
				h.debit(to, amount)
				h.credit(from, amount)
				return fmt.Errorf("transfer rejected by %s: %w", to.Hex(), err)
			}
		}
	}
	return nil
}

func (h *Host) credit(addr common.Address, amount *big.Int) {
	if bal, ok := h.balances[addr]; ok {
		bal.Add(bal, amount)
		return
	}
	h.balances[addr] = new(big.Int).Set(amount)
}

func (h *Host) debit(addr common.Address, amount *big.Int) {
	if bal, ok := h.balances[addr]; ok {
		bal.Sub(bal, amount)
	}
}
