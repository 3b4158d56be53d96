package contract

import (
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"guild_dao/sdk"
)

// voteMeta is the stored ballot for one proposal: when the window opened
// and the running share-weighted tallies.
type voteMeta struct {
	StartedAt int64  `json:"started_at"`
	Yes       string `json:"yes"`
	No        string `json:"no"`
}

// VotingModule records per-member votes and resolves ballots into a
// tri-state outcome once the voting window elapsed. Votes are weighted by
// the member's shares at vote time.
type VotingModule struct {
	host *sdk.Host
	reg  *Registry
	dao  common.Address
	addr common.Address
	cfg  *DaoConfig
	log  *slog.Logger
}

func NewVotingModule(host *sdk.Host, reg *Registry, addr common.Address, cfg *DaoConfig, log *slog.Logger) (*VotingModule, error) {
	if log == nil {
		log = slog.Default()
	}
	v := &VotingModule{host: host, reg: reg, dao: reg.ContractAddress(), addr: addr, cfg: cfg, log: log}
	if err := host.Deploy(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *VotingModule) ContractAddress() common.Address {
	return v.addr
}

// StartVote opens the ballot for a proposal. Domain modules call this
// right after they obtained the proposal id.
func (v *VotingModule) StartVote(env sdk.Env, proposalID uint64) error {
	if !v.reg.IsModule(env.Sender) {
		return unauthorized("only registered modules may open ballots")
	}
	if proposalID == 0 {
		return invalidInput("proposal id must not be zero")
	}
	st := v.host.State()
	key := voteMetaKey(v.dao, proposalID)
	if st.Get(key) != nil {
		return stateConflict("ballot already open for proposal")
	}
	return saveRecord(st, key, voteMeta{StartedAt: env.Time, Yes: "0", No: "0"})
}

// SubmitVote records one member's vote. Each member votes at most once per
// proposal; the weight is their share count at submission time.
func (v *VotingModule) SubmitVote(env sdk.Env, proposalID uint64, value uint8) error {
	if value != VoteYes && value != VoteNo {
		return invalidInput("vote value must be yes(1) or no(2)")
	}
	st := v.host.State()
	var meta voteMeta
	ok, err := loadRecord(st, voteMetaKey(v.dao, proposalID), &meta)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("no ballot for proposal")
	}
	if env.Time >= meta.StartedAt+v.cfg.VotingPeriodSecs {
		return stateConflict("voting window has closed")
	}
	member, err := resolveMember(v.reg)
	if err != nil {
		return err
	}
	if !member.IsActiveMember(env.Sender) {
		return unauthorized("only active members may vote")
	}
	receiptKey := voteReceiptKey(v.dao, proposalID, env.Sender)
	if st.Get(receiptKey) != nil {
		return stateConflict("member has already voted on proposal")
	}
	weight := member.NbShares(env.Sender)
	if value == VoteYes {
		meta.Yes = encodeAmount(new(big.Int).Add(decodeAmount(meta.Yes), weight))
	} else {
		meta.No = encodeAmount(new(big.Int).Add(decodeAmount(meta.No), weight))
	}
	if err := saveRecord(st, voteMetaKey(v.dao, proposalID), meta); err != nil {
		return err
	}
	st.Set(receiptKey, "1")
	emitVoteCast(v.log, proposalID, env.Sender, value, weight)
	return nil
}

// VoteResult resolves the current outcome for a proposal. The result is
// derived state: once the window elapsed it is deterministic and stable,
// because receipts prevent any vote from being counted twice.
func (v *VotingModule) VoteResult(proposalID uint64) VoteState {
	var meta voteMeta
	ok, err := loadRecord(v.host.State(), voteMetaKey(v.dao, proposalID), &meta)
	if err != nil || !ok {
		return VoteNotStarted
	}
	if v.host.Now() < meta.StartedAt+v.cfg.VotingPeriodSecs+v.cfg.GracePeriodSecs {
		return VoteInProgress
	}
	yes := decodeAmount(meta.Yes)
	no := decodeAmount(meta.No)
	if v.cfg.QuorumPercent > 0 {
		member, err := resolveMember(v.reg)
		if err != nil {
			// quorum cannot be verified without a member module, so the
			// ballot must not pass
			v.log.Warn("vote result: member module unresolved", "proposal", proposalID, "err", err)
			return VoteFailed
		}
		participation := new(big.Int).Add(yes, no)
		participation.Mul(participation, big.NewInt(100))
		required := new(big.Int).Mul(member.TotalShares(), big.NewInt(int64(v.cfg.QuorumPercent)))
		if participation.Cmp(required) < 0 {
			return VoteFailed
		}
	}
	if yes.Cmp(no) > 0 {
		return VotePassed
	}
	return VoteFailed
}
