package contract

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"guild_dao/sdk"
)

// BankModule keeps the dao ledger: one balance per (bucket, token) where a
// bucket is either a well-known sentinel (guild, escrow, total) or a plain
// account. Ledger writes always land before the literal value movement so
// a half-done transfer can never leave coins unaccounted.
type BankModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	log  *slog.Logger
}

func NewBankModule(host *sdk.Host, reg *Registry, addr common.Address, log *slog.Logger) (*BankModule, error) {
	if log == nil {
		log = slog.Default()
	}
	b := &BankModule{host: host, reg: reg, dao: reg.ContractAddress(), addr: addr, log: log}
	if err := host.Deploy(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BankModule) ContractAddress() common.Address {
	return b.addr
}

// ReceiveValue accepts native coin; the bank is the one contract that is
// supposed to hold it.
func (b *BankModule) ReceiveValue(env sdk.Env, amount *big.Int) error {
	return nil
}

// IsReservedAddress is true for the sentinel buckets and the bank itself.
// Domain modules reject applicants that collide with bookkeeping accounts.
func (b *BankModule) IsReservedAddress(addr common.Address) bool {
	return addr == GuildBucket || addr == EscrowBucket || addr == TotalBucket || addr == b.addr
}

// BalanceOf is a pure ledger read.
func (b *BankModule) BalanceOf(bucket, token common.Address) *big.Int {
	ptr := b.host.State().Get(bankKey(b.dao, bucket, token))
	if ptr == nil {
		return new(big.Int)
	}
	return decodeAmount(*ptr)
}

// AddToEscrow credits the escrow bucket. Module-only: the ledger is not a
// public piggy bank.
func (b *BankModule) AddToEscrow(env sdk.Env, token common.Address, amount *big.Int) error {
	return b.addToBucket(env, EscrowBucket, token, amount)
}

// AddToGuild credits the guild treasury bucket.
func (b *BankModule) AddToGuild(env sdk.Env, token common.Address, amount *big.Int) error {
	return b.addToBucket(env, GuildBucket, token, amount)
}

func (b *BankModule) addToBucket(env sdk.Env, bucket, token common.Address, amount *big.Int) error {
	if !b.reg.IsModule(env.Sender) {
		return unauthorized("only registered modules may move ledger funds")
	}
	if amount == nil || amount.Sign() <= 0 {
		return invalidInput("amount must be positive")
	}
	b.setBalance(bucket, token, new(big.Int).Add(b.BalanceOf(bucket, token), amount))
	b.setBalance(TotalBucket, token, new(big.Int).Add(b.BalanceOf(TotalBucket, token), amount))
	emitFundsMoved(b.log, bucket, token, amount)
	return nil
}

// InternalTransfer moves ledger balance between two buckets without
// touching the token total, e.g. guild -> applicant on a payout.
func (b *BankModule) InternalTransfer(env sdk.Env, from, to, token common.Address, amount *big.Int) error {
	if !b.reg.IsModule(env.Sender) {
		return unauthorized("only registered modules may move ledger funds")
	}
	if amount == nil || amount.Sign() <= 0 {
		return invalidInput("amount must be positive")
	}
	fromBal := b.BalanceOf(from, token)
	if fromBal.Cmp(amount) < 0 {
		return stateConflict("insufficient bucket balance")
	}
	b.setBalance(from, token, new(big.Int).Sub(fromBal, amount))
	b.setBalance(to, token, new(big.Int).Add(b.BalanceOf(to, token), amount))
	emitFundsMoved(b.log, to, token, amount)
	return nil
}

// LedgerTotal sums the given buckets for one token. The result must always
// equal the total bucket, which is the ledger's conservation invariant.
func (b *BankModule) LedgerTotal(token common.Address, buckets []common.Address) *big.Int {
	return lo.Reduce(buckets, func(acc *big.Int, bucket common.Address, _ int) *big.Int {
		return acc.Add(acc, b.BalanceOf(bucket, token))
	}, new(big.Int))
}

func (b *BankModule) setBalance(bucket, token common.Address, amount *big.Int) {
	b.host.State().Set(bankKey(b.dao, bucket, token), encodeAmount(amount))
}
