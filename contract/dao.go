package contract

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"guild_dao/sdk"
)

// Dao bundles one deployed dao instance: the registry plus its registered
// modules. Summoning is the only wiring step; afterwards every
// cross-module hop goes through the registry again.
type Dao struct {
	Host     *sdk.Host
	Config   *DaoConfig
	Registry *Registry

	Bank       *BankModule
	Member     *MemberModule
	Proposal   *ProposalModule
	Voting     *VotingModule
	Financing  *FinancingModule
	Onboarding *OnboardingModule
}

// ModuleAddress derives a deterministic address for a named module of the
// dao seeded by the summoner, so repeated summons land on the same layout.
func ModuleAddress(summoner common.Address, name string) common.Address {
	return common.BytesToAddress(crypto.Keccak256(summoner.Bytes(), []byte(name))[12:])
}

// SummonDao deploys a registry owned by the summoner, deploys all modules,
// registers them under their well-known ids and seats the summoner as the
// first member.
func SummonDao(host *sdk.Host, cfg *DaoConfig, summoner common.Address, log *slog.Logger) (*Dao, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if summoner == (common.Address{}) {
		return nil, invalidInput("summoner must not be zero")
	}
	if log == nil {
		log = slog.Default()
	}

	reg, err := NewRegistry(host, ModuleAddress(summoner, "registry"), summoner, log)
	if err != nil {
		return nil, err
	}
	bank, err := NewBankModule(host, reg, ModuleAddress(summoner, "bank"), log)
	if err != nil {
		return nil, err
	}
	member, err := NewMemberModule(host, reg, ModuleAddress(summoner, "member"), summoner, log)
	if err != nil {
		return nil, err
	}
	proposal, err := NewProposalModule(host, reg, ModuleAddress(summoner, "proposal"), log)
	if err != nil {
		return nil, err
	}
	voting, err := NewVotingModule(host, reg, ModuleAddress(summoner, "voting"), cfg, log)
	if err != nil {
		return nil, err
	}
	financing, err := NewFinancingModule(host, reg, ModuleAddress(summoner, "financing"), log)
	if err != nil {
		return nil, err
	}
	onboarding, err := NewOnboardingModule(host, reg, ModuleAddress(summoner, "onboarding"), cfg, log)
	if err != nil {
		return nil, err
	}

	ownerEnv := host.NewEnv(summoner)
	entries := []struct {
		id   common.Hash
		addr common.Address
	}{
		{ModuleBank, bank.ContractAddress()},
		{ModuleMember, member.ContractAddress()},
		{ModuleProposal, proposal.ContractAddress()},
		{ModuleVoting, voting.ContractAddress()},
		{ModuleFinancing, financing.ContractAddress()},
		{ModuleOnboarding, onboarding.ContractAddress()},
	}
	for _, e := range entries {
		if err := reg.UpdateRegistry(ownerEnv, e.id, e.addr); err != nil {
			return nil, err
		}
	}

	return &Dao{
		Host:       host,
		Config:     cfg,
		Registry:   reg,
		Bank:       bank,
		Member:     member,
		Proposal:   proposal,
		Voting:     voting,
		Financing:  financing,
		Onboarding: onboarding,
	}, nil
}
