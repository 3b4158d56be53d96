package sdk

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Env is the per-call environment a contract method receives: who is
// calling, how much native value they allow the call to draw, and the
// host clock at call time.
type Env struct {
	Sender common.Address
	Value  *big.Int
	Time   int64
	TxID   string
}

// AllowedValue returns the value allowance, never nil.
func (e Env) AllowedValue() *big.Int {
	if e.Value == nil {
		return new(big.Int)
	}
	return e.Value
}

// WithSender derives an env for a module-to-module call: the module itself
// becomes the sender while clock and tx id stay those of the original call.
func (e Env) WithSender(sender common.Address) Env {
	return Env{Sender: sender, Value: new(big.Int), Time: e.Time, TxID: e.TxID}
}
