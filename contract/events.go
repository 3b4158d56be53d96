package contract

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event lines are terse pipe-delimited strings so indexers can replay the
// dao lifecycle from logs alone without scanning state diffs.

// emitRegistryUpdated leaves a ru line whenever a module id is (re)pointed.
func emitRegistryUpdated(log *slog.Logger, moduleID common.Hash, addr common.Address) {
	log.Info(fmt.Sprintf("ru|id:%s|addr:%s", moduleID.Hex(), addr.Hex()))
}

// emitRegistryRemoved mirrors the update ping for deletions.
func emitRegistryRemoved(log *slog.Logger, moduleID common.Hash) {
	log.Info(fmt.Sprintf("rr|id:%s", moduleID.Hex()))
}

// emitProposalCreated fires one pc line for every new proposal id handed out.
func emitProposalCreated(log *slog.Logger, module string, proposalID uint64, by common.Address) {
	log.Info(fmt.Sprintf("pc|m:%s|id:%d|by:%s", module, proposalID, by.Hex()))
}

// emitVoteCast includes the raw value and weight so tallies can be replayed.
func emitVoteCast(log *slog.Logger, proposalID uint64, voter common.Address, value uint8, weight *big.Int) {
	log.Info(fmt.Sprintf("v|id:%d|by:%s|val:%d|w:%s", proposalID, voter.Hex(), value, weight.String()))
}

// emitProposalProcessed marks the terminal transition of a proposal.
func emitProposalProcessed(log *slog.Logger, module string, proposalID uint64, by common.Address) {
	log.Info(fmt.Sprintf("pp|m:%s|id:%d|by:%s", module, proposalID, by.Hex()))
}

// emitFundsMoved traces every ledger credit next to the literal transfer.
func emitFundsMoved(log *slog.Logger, bucket common.Address, token common.Address, amount *big.Int) {
	log.Info(fmt.Sprintf("fm|bkt:%s|tok:%s|am:%s", bucket.Hex(), token.Hex(), amount.String()))
}

// emitSharesMinted signals fresh shares for a member.
func emitSharesMinted(log *slog.Logger, member common.Address, shares *big.Int) {
	log.Info(fmt.Sprintf("sm|to:%s|n:%s", member.Hex(), shares.String()))
}
