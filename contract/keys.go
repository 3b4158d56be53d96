package contract

import (
	"github.com/ethereum/go-ethereum/common"
)

// Storage keys use one prefix byte plus fixed-width packing so related
// records sit next to each other in the kv store. All keys carry the dao
// address so two dao instances can share one host without colliding.

// packU64LE appends x to dst in little-endian order and returns the slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// registryKey stores a module entry under the registry's own address.
func registryKey(dao common.Address, moduleID common.Hash) string {
	buf := make([]byte, 0, 1+20+32)
	buf = append(buf, kRegistryEntry)
	buf = append(buf, dao.Bytes()...)
	buf = append(buf, moduleID.Bytes()...)
	return string(buf)
}

// registryModuleKey is the reverse index entry for a registered address.
func registryModuleKey(dao common.Address, moduleAddr common.Address) string {
	buf := make([]byte, 0, 1+20+20)
	buf = append(buf, kRegistryModule)
	buf = append(buf, dao.Bytes()...)
	buf = append(buf, moduleAddr.Bytes()...)
	return string(buf)
}

// bankKey addresses one ledger balance by (dao, bucket, token).
func bankKey(dao, bucket, token common.Address) string {
	buf := make([]byte, 0, 1+20+20+20)
	buf = append(buf, kBankBalance)
	buf = append(buf, dao.Bytes()...)
	buf = append(buf, bucket.Bytes()...)
	buf = append(buf, token.Bytes()...)
	return string(buf)
}

// memberKey locates a member record inside the dao scope.
func memberKey(dao, addr common.Address) string {
	buf := make([]byte, 0, 1+20+20)
	buf = append(buf, kMemberRecord)
	buf = append(buf, dao.Bytes()...)
	buf = append(buf, addr.Bytes()...)
	return string(buf)
}

// totalSharesKey tracks the dao-wide share count for quorum math.
func totalSharesKey(dao common.Address) string {
	buf := make([]byte, 0, 1+20)
	buf = append(buf, kMemberTotalShares)
	buf = append(buf, dao.Bytes()...)
	return string(buf)
}

// proposalCountKey holds the next proposal id for the dao.
func proposalCountKey(dao common.Address) string {
	buf := make([]byte, 0, 1+20)
	buf = append(buf, kProposalCount)
	buf = append(buf, dao.Bytes()...)
	return string(buf)
}

// voteMetaKey stores the ballot for one proposal.
func voteMetaKey(dao common.Address, proposalID uint64) string {
	buf := make([]byte, 0, 1+20+8)
	buf = append(buf, kVoteMeta)
	buf = append(buf, dao.Bytes()...)
	buf = packU64LE(proposalID, buf)
	return string(buf)
}

// voteReceiptKey marks one member's vote on one proposal.
func voteReceiptKey(dao common.Address, proposalID uint64, voter common.Address) string {
	buf := make([]byte, 0, 1+20+8+20)
	buf = append(buf, kVoteReceipt)
	buf = append(buf, dao.Bytes()...)
	buf = packU64LE(proposalID, buf)
	buf = append(buf, voter.Bytes()...)
	return string(buf)
}

// financingKey locates a financing extension record by proposal id.
func financingKey(dao common.Address, proposalID uint64) string {
	buf := make([]byte, 0, 1+20+8)
	buf = append(buf, kFinancingRecord)
	buf = append(buf, dao.Bytes()...)
	buf = packU64LE(proposalID, buf)
	return string(buf)
}

// onboardingKey locates an onboarding extension record by proposal id.
func onboardingKey(dao common.Address, proposalID uint64) string {
	buf := make([]byte, 0, 1+20+8)
	buf = append(buf, kOnboardingRecord)
	buf = append(buf, dao.Bytes()...)
	buf = packU64LE(proposalID, buf)
	return string(buf)
}
