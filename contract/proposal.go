package contract

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// ProposalModule hands out proposal identifiers, nothing more. Content
// lives with the domain module that asked for the id; votes live with the
// voting module. Ids are monotonic per dao and never reused.
type ProposalModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	log  *slog.Logger
}

func NewProposalModule(host *sdk.Host, reg *Registry, addr common.Address, log *slog.Logger) (*ProposalModule, error) {
	if log == nil {
		log = slog.Default()
	}
	p := &ProposalModule{host: host, reg: reg, dao: reg.ContractAddress(), addr: addr, log: log}
	if err := host.Deploy(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ProposalModule) ContractAddress() common.Address {
	return p.addr
}

// CreateProposal allocates the next unused identifier for this dao.
// Only registered modules may open proposals; end users go through a
// domain module which enforces its own preconditions first.
func (p *ProposalModule) CreateProposal(env sdk.Env) (uint64, error) {
	if !p.reg.IsModule(env.Sender) {
		return 0, unauthorized("only registered modules may open proposals")
	}
	st := p.host.State()
	key := proposalCountKey(p.dao)
	next := getCount(st, key) + 1
	setCount(st, key, next)
	return next, nil
}
