package contract

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// memberRecord is the stored shape of one membership.
type memberRecord struct {
	Shares string `json:"shares"`
}

// MemberModule tracks who belongs to the dao and with how many shares.
// Share mutation is module-gated; the usual path in is onboarding.
type MemberModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	log  *slog.Logger
}

// NewMemberModule deploys the membership module and seats the summoner
// with a single share so the dao starts with one active voter.
func NewMemberModule(host *sdk.Host, reg *Registry, addr, summoner common.Address, log *slog.Logger) (*MemberModule, error) {
	if log == nil {
		log = slog.Default()
	}
	m := &MemberModule{host: host, reg: reg, dao: reg.ContractAddress(), addr: addr, log: log}
	if err := host.Deploy(m); err != nil {
		return nil, err
	}
	if summoner != (common.Address{}) {
		if err := m.mint(summoner, big.NewInt(1)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MemberModule) ContractAddress() common.Address {
	return m.addr
}

// IsActiveMember is true for any address holding at least one share.
func (m *MemberModule) IsActiveMember(addr common.Address) bool {
	return m.NbShares(addr).Sign() > 0
}

// NbShares returns the share count for addr, zero for strangers.
func (m *MemberModule) NbShares(addr common.Address) *big.Int {
	var rec memberRecord
	ok, err := loadRecord(m.host.State(), memberKey(m.dao, addr), &rec)
	if err != nil || !ok {
		return new(big.Int)
	}
	return decodeAmount(rec.Shares)
}

// TotalShares returns the dao-wide share count, used for quorum math.
func (m *MemberModule) TotalShares() *big.Int {
	ptr := m.host.State().Get(totalSharesKey(m.dao))
	if ptr == nil {
		return new(big.Int)
	}
	return decodeAmount(*ptr)
}

// MintShares credits shares to addr. Only registered modules may call this;
// that is the whole access-control story for membership changes.
func (m *MemberModule) MintShares(env sdk.Env, addr common.Address, shares *big.Int) error {
	if !m.reg.IsModule(env.Sender) {
		return unauthorized("only registered modules may mint shares")
	}
	if addr == (common.Address{}) {
		return invalidInput("member address must not be zero")
	}
	if shares == nil || shares.Sign() <= 0 {
		return invalidInput("share amount must be positive")
	}
	return m.mint(addr, shares)
}

func (m *MemberModule) mint(addr common.Address, shares *big.Int) error {
	st := m.host.State()
	next := new(big.Int).Add(m.NbShares(addr), shares)
	if err := saveRecord(st, memberKey(m.dao, addr), memberRecord{Shares: encodeAmount(next)}); err != nil {
		return err
	}
	st.Set(totalSharesKey(m.dao), encodeAmount(new(big.Int).Add(m.TotalShares(), shares)))
	emitSharesMinted(m.log, addr, shares)
	return nil
}
