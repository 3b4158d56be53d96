package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// The interfaces below are the only surface domain modules see of their
// collaborators. Modules never hold collaborator instances; they hold the
// registry and resolve on every call, so a registry update takes effect on
// the very next call.

// BankContract holds and moves value between named buckets.
type BankContract interface {
	sdk.Contract
	IsReservedAddress(addr common.Address) bool
	AddToEscrow(env sdk.Env, token common.Address, amount *big.Int) error
	AddToGuild(env sdk.Env, token common.Address, amount *big.Int) error
	InternalTransfer(env sdk.Env, from, to, token common.Address, amount *big.Int) error
	BalanceOf(bucket, token common.Address) *big.Int
}

// MemberContract tracks membership status and share counts.
type MemberContract interface {
	sdk.Contract
	IsActiveMember(addr common.Address) bool
	NbShares(addr common.Address) *big.Int
	TotalShares() *big.Int
	MintShares(env sdk.Env, addr common.Address, shares *big.Int) error
}

// VotingContract records votes per proposal and resolves the outcome.
type VotingContract interface {
	sdk.Contract
	StartVote(env sdk.Env, proposalID uint64) error
	SubmitVote(env sdk.Env, proposalID uint64, value uint8) error
	VoteResult(proposalID uint64) VoteState
}

// ProposalContract allocates unique proposal identifiers.
type ProposalContract interface {
	sdk.Contract
	CreateProposal(env sdk.Env) (uint64, error)
}

// FinancingContract disburses treasury funds gated by a passing vote.
type FinancingContract interface {
	sdk.Contract
	CreateFinancingRequest(env sdk.Env, applicant common.Address, amount *big.Int, details common.Hash) (uint64, error)
	ProcessProposal(env sdk.Env, proposalID uint64) error
}

// OnboardingContract admits new members in exchange for contributed value.
type OnboardingContract interface {
	sdk.Contract
	CreateOnboardingRequest(env sdk.Env, applicant common.Address) (uint64, error)
	ProcessProposal(env sdk.Env, proposalID uint64) error
}

// -----------------------------------------------------------------------------
// Per-call collaborator resolution
// -----------------------------------------------------------------------------

// resolveContract walks registry -> address -> host directory and asserts
// the target shape. A zero address means the module id is unconfigured.
func resolveContract[T any](reg *Registry, moduleID common.Hash, name string) (T, error) {
	var zero T
	addr := reg.GetAddress(moduleID)
	if addr == (common.Address{}) {
		return zero, notFound(name + " module not configured")
	}
	c := reg.Host().ContractAt(addr)
	target, ok := c.(T)
	if !ok {
		return zero, notFound(name + " module not configured")
	}
	return target, nil
}

func resolveBank(reg *Registry) (BankContract, error) {
	return resolveContract[BankContract](reg, ModuleBank, "bank")
}

func resolveMember(reg *Registry) (MemberContract, error) {
	return resolveContract[MemberContract](reg, ModuleMember, "member")
}

func resolveVoting(reg *Registry) (VotingContract, error) {
	return resolveContract[VotingContract](reg, ModuleVoting, "voting")
}

func resolveProposal(reg *Registry) (ProposalContract, error) {
	return resolveContract[ProposalContract](reg, ModuleProposal, "proposal")
}

var (
	_ BankContract       = (*BankModule)(nil)
	_ MemberContract     = (*MemberModule)(nil)
	_ VotingContract     = (*VotingModule)(nil)
	_ ProposalContract   = (*ProposalModule)(nil)
	_ FinancingContract  = (*FinancingModule)(nil)
	_ OnboardingContract = (*OnboardingModule)(nil)
)
