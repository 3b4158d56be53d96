package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// -----------------------------------------------------------------------------
// Well-known module ids
// -----------------------------------------------------------------------------

// Module ids are keccak hashes of the plain ASCII module names, so any
// client can derive them without a lookup table.
var (
	ModuleBank       = crypto.Keccak256Hash([]byte("bank"))
	ModuleMember     = crypto.Keccak256Hash([]byte("member"))
	ModuleProposal   = crypto.Keccak256Hash([]byte("proposal"))
	ModuleVoting     = crypto.Keccak256Hash([]byte("voting"))
	ModuleOnboarding = crypto.Keccak256Hash([]byte("onboarding"))
	ModuleFinancing  = crypto.Keccak256Hash([]byte("financing"))
)

// -----------------------------------------------------------------------------
// Reserved bank buckets
// -----------------------------------------------------------------------------

// Sentinel bucket addresses. These are bookkeeping accounts inside the bank
// ledger and must never appear as an applicant or member address.
var (
	// GuildBucket is the DAO's general treasury.
	GuildBucket = common.HexToAddress("0x000000000000000000000000000000000000dead")
	// EscrowBucket holds funds earmarked for disbursement pending processing.
	EscrowBucket = common.HexToAddress("0x000000000000000000000000000000000000beef")
	// TotalBucket mirrors the sum of all other buckets per token.
	TotalBucket = common.HexToAddress("0x000000000000000000000000000000000000babe")
)

// NativeToken is the token address standing for the host's native coin.
var NativeToken = common.Address{}

// -----------------------------------------------------------------------------
// Storage key prefixes
// -----------------------------------------------------------------------------

const (
	// kRegistryEntry stores module-id -> address mappings.
	kRegistryEntry byte = 0x01
	// kRegistryModule is the reverse index: module address -> module id.
	kRegistryModule byte = 0x02
	// kBankBalance stores one ledger balance per (bucket, token).
	kBankBalance byte = 0x03
	// kMemberRecord houses encoded member structs.
	kMemberRecord byte = 0x04
	// kMemberTotalShares tracks the share total across all members.
	kMemberTotalShares byte = 0x05
	// kProposalCount holds the monotonic proposal id counter.
	kProposalCount byte = 0x06
	// kVoteMeta contains the per-proposal ballot (window start, tallies).
	kVoteMeta byte = 0x10
	// kVoteReceipt marks that a member already voted on a proposal.
	kVoteReceipt byte = 0x11
	// kFinancingRecord contains financing proposal extension records.
	kFinancingRecord byte = 0x20
	// kOnboardingRecord contains onboarding proposal extension records.
	kOnboardingRecord byte = 0x21
)
