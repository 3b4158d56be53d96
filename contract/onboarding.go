package contract

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// OnboardingRecord is the extension record for a membership request: who
// joins, what they escrowed and how many shares a pass will mint.
type OnboardingRecord struct {
	Applicant common.Address `json:"applicant"`
	Amount    string         `json:"amount"`
	Shares    string         `json:"shares"`
	Processed bool           `json:"processed"`
}

// OnboardingModule mirrors the financing protocol with the funds flowing
// the other way: a contributor escrows native coin with the request, and a
// passing vote converts it into guild treasury plus freshly minted shares.
// Only whole share-chunks are onboarded; any surplus value stays with the
// contributor because it is simply never drawn.
type OnboardingModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	cfg  *DaoConfig
	log  *slog.Logger

	inFlight map[uint64]bool
}

func NewOnboardingModule(host *sdk.Host, reg *Registry, addr common.Address, cfg *DaoConfig, log *slog.Logger) (*OnboardingModule, error) {
	if log == nil {
		log = slog.Default()
	}
	o := &OnboardingModule{
		host:     host,
		reg:      reg,
		dao:      reg.ContractAddress(),
		addr:     addr,
		cfg:      cfg,
		log:      log,
		inFlight: make(map[uint64]bool),
	}
	if err := host.Deploy(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *OnboardingModule) ContractAddress() common.Address {
	return o.addr
}

// ReceiveValue accepts coin: the module escrows contributions on itself
// until the request is processed or refunded.
func (o *OnboardingModule) ReceiveValue(env sdk.Env, amount *big.Int) error {
	return nil
}

// CreateOnboardingRequest escrows the contribution attached to the call
// and opens a membership ballot. chunks = value / sharePrice, and only
// chunks*sharePrice is drawn from the contributor.
func (o *OnboardingModule) CreateOnboardingRequest(env sdk.Env, applicant common.Address) (uint64, error) {
	if applicant == (common.Address{}) {
		return 0, invalidInput("applicant must not be zero")
	}
	sharePrice := o.cfg.SharePriceWei()
	chunks := new(big.Int).Div(env.AllowedValue(), sharePrice)
	if chunks.Sign() == 0 {
		return 0, invalidInput("contribution below share price")
	}
	bank, err := resolveBank(o.reg)
	if err != nil {
		return 0, err
	}
	if bank.IsReservedAddress(applicant) {
		return 0, reservedAddress("applicant collides with a reserved bank address")
	}
	proposals, err := resolveProposal(o.reg)
	if err != nil {
		return 0, err
	}
	proposalID, err := proposals.CreateProposal(env.WithSender(o.addr))
	if err != nil {
		return 0, err
	}
	consumed := new(big.Int).Mul(chunks, sharePrice)
	shares := new(big.Int).Mul(chunks, big.NewInt(o.cfg.ChunkShares))
	rec := OnboardingRecord{
		Applicant: applicant,
		Amount:    encodeAmount(consumed),
		Shares:    encodeAmount(shares),
	}
	if err := saveRecord(o.host.State(), onboardingKey(o.dao, proposalID), rec); err != nil {
		return 0, err
	}
	if err := o.host.Draw(env, o.addr, consumed); err != nil {
		return 0, err
	}
	voting, err := resolveVoting(o.reg)
	if err != nil {
		return 0, err
	}
	if err := voting.StartVote(env.WithSender(o.addr), proposalID); err != nil {
		return 0, err
	}
	emitProposalCreated(o.log, "onboarding", proposalID, env.Sender)
	return proposalID, nil
}

// ProcessProposal runs the same gate ordering as financing: member check,
// vote check, processed check, then guild ledger credit, processed flag,
// and finally the escrowed coin moves into the bank.
func (o *OnboardingModule) ProcessProposal(env sdk.Env, proposalID uint64) error {
	member, err := resolveMember(o.reg)
	if err != nil {
		return err
	}
	if !member.IsActiveMember(env.Sender) {
		return unauthorized("only active members may process proposals")
	}
	st := o.host.State()
	var rec OnboardingRecord
	ok, err := loadRecord(st, onboardingKey(o.dao, proposalID), &rec)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("unknown onboarding proposal")
	}
	voting, err := resolveVoting(o.reg)
	if err != nil {
		return err
	}
	if voting.VoteResult(proposalID) != VotePassed {
		return stateConflict("vote has not passed")
	}
	if rec.Processed {
		return stateConflict("proposal already processed")
	}
	if o.inFlight[proposalID] {
		return stateConflict("proposal is already being processed")
	}
	o.inFlight[proposalID] = true
	defer delete(o.inFlight, proposalID)

	amount := decodeAmount(rec.Amount)
	shares := decodeAmount(rec.Shares)
	moduleEnv := env.WithSender(o.addr)
	if err := member.MintShares(moduleEnv, rec.Applicant, shares); err != nil {
		return err
	}
	bank, err := resolveBank(o.reg)
	if err != nil {
		return err
	}
	if err := bank.AddToGuild(moduleEnv, NativeToken, amount); err != nil {
		return err
	}
	rec.Processed = true
	if err := saveRecord(st, onboardingKey(o.dao, proposalID), rec); err != nil {
		return err
	}
	if err := o.host.Transfer(env, o.addr, bank.ContractAddress(), amount); err != nil {
		return err
	}
	emitProposalProcessed(o.log, "onboarding", proposalID, env.Sender)
	return nil
}

// RefundRequest returns the escrowed contribution to the applicant once a
// ballot has failed. Anyone may trigger it; the coin can only go one way.
func (o *OnboardingModule) RefundRequest(env sdk.Env, proposalID uint64) error {
	st := o.host.State()
	var rec OnboardingRecord
	ok, err := loadRecord(st, onboardingKey(o.dao, proposalID), &rec)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("unknown onboarding proposal")
	}
	if rec.Processed {
		return stateConflict("proposal already processed")
	}
	voting, err := resolveVoting(o.reg)
	if err != nil {
		return err
	}
	if voting.VoteResult(proposalID) != VoteFailed {
		return stateConflict("ballot has not failed")
	}
	rec.Processed = true
	if err := saveRecord(st, onboardingKey(o.dao, proposalID), rec); err != nil {
		return err
	}
	if err := o.host.Transfer(env, o.addr, rec.Applicant, decodeAmount(rec.Amount)); err != nil {
		return err
	}
	emitProposalProcessed(o.log, "onboarding", proposalID, env.Sender)
	return nil
}

// Request returns the stored extension record for a proposal id.
func (o *OnboardingModule) Request(proposalID uint64) (*OnboardingRecord, error) {
	var rec OnboardingRecord
	ok, err := loadRecord(o.host.State(), onboardingKey(o.dao, proposalID), &rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("unknown onboarding proposal")
	}
	return &rec, nil
}
