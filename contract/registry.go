package contract

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// Registry is the single source of truth mapping module ids to module
// addresses. Its own address doubles as the dao instance identifier every
// other record in state is scoped by.
type Registry struct {
	host  *sdk.Host
	addr  common.Address
	owner common.Address
	log   *slog.Logger
}

// NewRegistry deploys a registry owned by owner. The owner is the only
// account allowed to mutate entries.
func NewRegistry(host *sdk.Host, addr, owner common.Address, log *slog.Logger) (*Registry, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{host: host, addr: addr, owner: owner, log: log}
	if err := host.Deploy(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) ContractAddress() common.Address {
	return r.addr
}

// Host exposes the execution environment for collaborator resolution.
func (r *Registry) Host() *sdk.Host {
	return r.host
}

// Owner returns the governance account controlling the registry.
func (r *Registry) Owner() common.Address {
	return r.owner
}

// UpdateRegistry inserts or overwrites a module entry, idempotently.
func (r *Registry) UpdateRegistry(env sdk.Env, moduleID common.Hash, moduleAddr common.Address) error {
	if env.Sender != r.owner {
		return unauthorized("only the registry owner may update entries")
	}
	if moduleID == (common.Hash{}) {
		return invalidInput("module id must not be empty")
	}
	if moduleAddr == (common.Address{}) {
		return invalidInput("module address must not be zero")
	}
	st := r.host.State()
	key := registryKey(r.addr, moduleID)
	// one address holds authority under exactly one module id
	if rev := st.Get(registryModuleKey(r.addr, moduleAddr)); rev != nil && *rev != moduleID.Hex() {
		return stateConflict("address already registered under another module id")
	}
	// drop the stale reverse entry when an id is re-pointed
	if prev := st.Get(key); prev != nil {
		st.Delete(registryModuleKey(r.addr, common.HexToAddress(*prev)))
	}
	st.Set(key, moduleAddr.Hex())
	st.Set(registryModuleKey(r.addr, moduleAddr), moduleID.Hex())
	emitRegistryUpdated(r.log, moduleID, moduleAddr)
	return nil
}

// RemoveRegistry deletes an entry; lookups afterwards return the zero
// address.
func (r *Registry) RemoveRegistry(env sdk.Env, moduleID common.Hash) error {
	if env.Sender != r.owner {
		return unauthorized("only the registry owner may remove entries")
	}
	st := r.host.State()
	key := registryKey(r.addr, moduleID)
	ptr := st.Get(key)
	if ptr == nil {
		return notFound("module id is not registered")
	}
	st.Delete(registryModuleKey(r.addr, common.HexToAddress(*ptr)))
	st.Delete(key)
	emitRegistryRemoved(r.log, moduleID)
	return nil
}

// GetAddress is a pure lookup. Absent ids resolve to the zero address and
// callers must treat that as "unconfigured".
func (r *Registry) GetAddress(moduleID common.Hash) common.Address {
	ptr := r.host.State().Get(registryKey(r.addr, moduleID))
	if ptr == nil {
		return common.Address{}
	}
	return common.HexToAddress(*ptr)
}

// IsModule reports whether addr is currently registered under any module
// id. Domain modules use this as the trust boundary for module-only calls.
func (r *Registry) IsModule(addr common.Address) bool {
	return r.host.State().Get(registryModuleKey(r.addr, addr)) != nil
}
