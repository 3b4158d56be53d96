package contract

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// FinancingRecord is the domain extension a financing request attaches to
// its proposal id. The generic proposal module never sees these fields.
type FinancingRecord struct {
	Applicant common.Address `json:"applicant"`
	Amount    string         `json:"amount"`
	Details   common.Hash    `json:"details"`
	Processed bool           `json:"processed"`
}

// FinancingModule implements the request/vote/process protocol that moves
// treasury funds towards an applicant. It is the template all domain
// modules follow: create stores a record and opens a ballot, process
// re-checks the vote and only then touches the bank.
type FinancingModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	log  *slog.Logger

	// inFlight guards each proposal across the external value transfer in
	// ProcessProposal. The processed flag alone would leave a window while
	// the transfer callback runs.
	inFlight map[uint64]bool
}

func NewFinancingModule(host *sdk.Host, reg *Registry, addr common.Address, log *slog.Logger) (*FinancingModule, error) {
	if log == nil {
		log = slog.Default()
	}
	f := &FinancingModule{
		host:     host,
		reg:      reg,
		dao:      reg.ContractAddress(),
		addr:     addr,
		log:      log,
		inFlight: make(map[uint64]bool),
	}
	if err := host.Deploy(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FinancingModule) ContractAddress() common.Address {
	return f.addr
}

// ReceiveValue rejects any direct payment. All value movement has to go
// through ProcessProposal.
func (f *FinancingModule) ReceiveValue(env sdk.Env, amount *big.Int) error {
	return unauthorized("financing contract does not accept direct payments")
}

// CreateFinancingRequest validates the applicant, allocates a proposal id,
// stores the extension record and opens the ballot. No funds move here.
func (f *FinancingModule) CreateFinancingRequest(env sdk.Env, applicant common.Address, amount *big.Int, details common.Hash) (uint64, error) {
	if applicant == (common.Address{}) {
		return 0, invalidInput("applicant must not be zero")
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, invalidInput("amount must be positive")
	}
	bank, err := resolveBank(f.reg)
	if err != nil {
		return 0, err
	}
	if bank.IsReservedAddress(applicant) {
		return 0, reservedAddress("applicant collides with a reserved bank address")
	}
	proposals, err := resolveProposal(f.reg)
	if err != nil {
		return 0, err
	}
	proposalID, err := proposals.CreateProposal(env.WithSender(f.addr))
	if err != nil {
		return 0, err
	}
	rec := FinancingRecord{
		Applicant: applicant,
		Amount:    encodeAmount(amount),
		Details:   details,
	}
	if err := saveRecord(f.host.State(), financingKey(f.dao, proposalID), rec); err != nil {
		return 0, err
	}
	voting, err := resolveVoting(f.reg)
	if err != nil {
		return 0, err
	}
	if err := voting.StartVote(env.WithSender(f.addr), proposalID); err != nil {
		return 0, err
	}
	emitProposalCreated(f.log, "financing", proposalID, env.Sender)
	return proposalID, nil
}

// ProcessProposal is the sole gate protecting treasury funds. Effects run
// in a fixed order: escrow ledger credit, processed flag, value transfer.
// The flag flips before the transfer so a reentrant call bounces off the
// already-processed check, and the inFlight guard covers the rest.
func (f *FinancingModule) ProcessProposal(env sdk.Env, proposalID uint64) error {
	member, err := resolveMember(f.reg)
	if err != nil {
		return err
	}
	if !member.IsActiveMember(env.Sender) {
		return unauthorized("only active members may process proposals")
	}
	st := f.host.State()
	var rec FinancingRecord
	ok, err := loadRecord(st, financingKey(f.dao, proposalID), &rec)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("unknown financing proposal")
	}
	voting, err := resolveVoting(f.reg)
	if err != nil {
		return err
	}
	if voting.VoteResult(proposalID) != VotePassed {
		return stateConflict("vote has not passed")
	}
	if rec.Processed {
		return stateConflict("proposal already processed")
	}
	if f.inFlight[proposalID] {
		return stateConflict("proposal is already being processed")
	}
	f.inFlight[proposalID] = true
	defer delete(f.inFlight, proposalID)

	amount := decodeAmount(rec.Amount)
	if env.AllowedValue().Cmp(amount) < 0 {
		return invalidInput("attached value must cover the requested amount")
	}
	bank, err := resolveBank(f.reg)
	if err != nil {
		return err
	}
	if err := bank.AddToEscrow(env.WithSender(f.addr), NativeToken, amount); err != nil {
		return err
	}
	rec.Processed = true
	if err := saveRecord(st, financingKey(f.dao, proposalID), rec); err != nil {
		return err
	}
	if err := f.host.Draw(env, bank.ContractAddress(), amount); err != nil {
		return err
	}
	emitProposalProcessed(f.log, "financing", proposalID, env.Sender)
	return nil
}

// Request returns the stored extension record for a proposal id.
func (f *FinancingModule) Request(proposalID uint64) (*FinancingRecord, error) {
	var rec FinancingRecord
	ok, err := loadRecord(f.host.State(), financingKey(f.dao, proposalID), &rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("unknown financing proposal")
	}
	return &rec, nil
}
