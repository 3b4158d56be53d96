package contract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"guild_dao/sdk"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAddr(name string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("test:" + name))[12:])
}

// newTestDao summons a dao with default config on a fresh host. The
// summoner is the registry owner and the only member at the start.
func newTestDao(t *testing.T) (*sdk.Host, *Dao) {
	t.Helper()
	host := sdk.NewHost(1_700_000_000)
	dao, err := SummonDao(host, DefaultConfig(), testAddr("summoner"), testLogger())
	require.NoError(t, err)
	return host, dao
}

// registerTestModule registers an arbitrary address as a module so a test
// can exercise module-gated operations directly.
func registerTestModule(t *testing.T, dao *Dao, addr common.Address) {
	t.Helper()
	ownerEnv := dao.Host.NewEnv(dao.Registry.Owner())
	id := crypto.Keccak256Hash([]byte("testmodule:" + addr.Hex()))
	require.NoError(t, dao.Registry.UpdateRegistry(ownerEnv, id, addr))
}

// passBallot has the summoner vote yes and lets the voting window elapse.
func passBallot(t *testing.T, dao *Dao, proposalID uint64) {
	t.Helper()
	env := dao.Host.NewEnv(dao.Registry.Owner())
	require.NoError(t, dao.Voting.SubmitVote(env, proposalID, VoteYes))
	dao.Host.AdvanceTime(dao.Config.VotingPeriodSecs + dao.Config.GracePeriodSecs + 1)
}

// failBallot has the summoner vote no and lets the voting window elapse.
func failBallot(t *testing.T, dao *Dao, proposalID uint64) {
	t.Helper()
	env := dao.Host.NewEnv(dao.Registry.Owner())
	require.NoError(t, dao.Voting.SubmitVote(env, proposalID, VoteNo))
	dao.Host.AdvanceTime(dao.Config.VotingPeriodSecs + dao.Config.GracePeriodSecs + 1)
}
