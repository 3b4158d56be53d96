package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"guild_dao/contract"
	"guild_dao/sdk"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a full onboarding + financing lifecycle",
	Long: `Summons a dao, onboards a contributor through a membership ballot and
then runs a financing request end to end: create, vote, advance time,
process. Prints the resulting ledger and share counts.`,
	RunE: runSimulate,
}

func accountAddress(name string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("account:" + name))[12:])
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := contract.LoadConfig()
	if err != nil {
		return err
	}

	host := sdk.NewHost(time.Now().Unix())
	summoner := accountAddress("summoner")
	applicant := accountAddress("applicant")

	dao, err := contract.SummonDao(host, cfg, summoner, log)
	if err != nil {
		return err
	}

	sharePrice := cfg.SharePriceWei()
	contribution := new(big.Int).Mul(sharePrice, big.NewInt(3))
	contribution.Add(contribution, big.NewInt(250)) // surplus stays with the contributor
	host.Mint(applicant, new(big.Int).Mul(contribution, big.NewInt(2)))
	host.Mint(summoner, new(big.Int).Mul(sharePrice, big.NewInt(10)))

	// --- onboarding lifecycle ---
	var onboardingID uint64
	if err := host.Execute(func() error {
		env := host.NewPayableEnv(applicant, contribution)
		onboardingID, err = dao.Onboarding.CreateOnboardingRequest(env, applicant)
		return err
	}); err != nil {
		return err
	}
	if err := host.Execute(func() error {
		return dao.Voting.SubmitVote(host.NewEnv(summoner), onboardingID, contract.VoteYes)
	}); err != nil {
		return err
	}
	host.AdvanceTime(cfg.VotingPeriodSecs + cfg.GracePeriodSecs + 1)
	if err := host.Execute(func() error {
		return dao.Onboarding.ProcessProposal(host.NewEnv(summoner), onboardingID)
	}); err != nil {
		return err
	}

	// --- financing lifecycle ---
	requested := new(big.Int).Div(sharePrice, big.NewInt(2))
	var financingID uint64
	if err := host.Execute(func() error {
		env := host.NewEnv(applicant)
		financingID, err = dao.Financing.CreateFinancingRequest(env, applicant, requested, crypto.Keccak256Hash([]byte("server invoice")))
		return err
	}); err != nil {
		return err
	}
	if err := host.Execute(func() error {
		return dao.Voting.SubmitVote(host.NewEnv(applicant), financingID, contract.VoteYes)
	}); err != nil {
		return err
	}
	host.AdvanceTime(cfg.VotingPeriodSecs + cfg.GracePeriodSecs + 1)
	if err := host.Execute(func() error {
		return dao.Financing.ProcessProposal(host.NewPayableEnv(summoner, requested), financingID)
	}); err != nil {
		return err
	}

	// --- report ---
	buckets := []struct {
		name string
		addr common.Address
	}{
		{"guild", contract.GuildBucket},
		{"escrow", contract.EscrowBucket},
		{"total", contract.TotalBucket},
	}
	lines := lo.Map(buckets, func(b struct {
		name string
		addr common.Address
	}, _ int) string {
		return fmt.Sprintf("  %-7s %s", b.name, dao.Bank.BalanceOf(b.addr, contract.NativeToken))
	})

	fmt.Printf("onboarding proposal %d processed, financing proposal %d processed\n", onboardingID, financingID)
	fmt.Println("ledger (native token):")
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Printf("shares: summoner=%s applicant=%s total=%s\n",
		dao.Member.NbShares(summoner), dao.Member.NbShares(applicant), dao.Member.TotalShares())
	fmt.Printf("bank holds %s native coin\n", host.BalanceOf(dao.Bank.ContractAddress()))
	return nil
}
