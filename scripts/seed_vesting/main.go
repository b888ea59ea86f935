package main

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"crowdvest/internal/handlers/business"
	"crowdvest/internal/models"
	"crowdvest/pkg/config"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"

	log "github.com/sirupsen/logrus"
)

// vestingSeed sets up one vesting-only sale and allocates tokens to a list
// of grantees through it. The release schedule is generated: trancheCount
// even tranches spaced intervalMinutes apart, the last tranche absorbing
// the basis-point remainder.
type vestingSeed struct {
	Seller             string  `json:"seller"`
	Sequence           uint64  `json:"sequence"`
	Authority          string  `json:"authority"`
	SaleMint           string  `json:"sale_mint"`
	PaymentDestination string  `json:"payment_destination"`
	SourceTokenAccount string  `json:"source_token_account"`
	FundingAmount      uint64  `json:"funding_amount"`
	TrancheCount       int     `json:"tranche_count"`
	IntervalMinutes    int     `json:"interval_minutes"`
	Grants             []grant `json:"grants"`
}

type grant struct {
	Buyer  string `json:"buyer"`
	Amount uint64 `json:"amount"`
}

func buildSchedule(start time.Time, count, intervalMinutes int) []models.ReleaseTranche {
	schedule := make([]models.ReleaseTranche, 0, count)
	fraction := uint16(business.BpsDenominator / count)
	var sum uint16
	for idx := 1; idx < count; idx++ {
		sum += fraction
		schedule = append(schedule, models.ReleaseTranche{
			ReleaseTime: uint64(start.Add(time.Duration(intervalMinutes*idx) * time.Minute).Unix()),
			FractionBps: fraction,
		})
	}
	schedule = append(schedule, models.ReleaseTranche{
		ReleaseTime: uint64(start.Add(time.Duration(intervalMinutes*count) * time.Minute).Unix()),
		FractionBps: uint16(business.BpsDenominator) - sum,
	})
	return schedule
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	path := flag.String("file", "seed_vesting.json", "path to the vesting seed file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("> failed to read seed file %s: %v", *path, err)
	}
	var seed vestingSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("> failed to parse seed file: %v", err)
	}
	if seed.TrancheCount <= 0 || seed.IntervalMinutes <= 0 {
		log.Fatal("> tranche_count and interval_minutes must be positive")
	}
	if len(seed.Grants) == 0 {
		log.Fatal("> seed file contains no grants")
	}

	config.InitDB()
	ledger := custody.NewLedger()
	engine := business.NewEngine(config.DB, ledger, solana.NewProgramDeriver())

	sale, err := engine.InitializeSale(business.InitializeSaleParams{
		Seller:             seed.Seller,
		Sequence:           seed.Sequence,
		Authority:          seed.Authority,
		AdvanceFractionBps: 0,
		ReleaseSchedule:    buildSchedule(time.Now(), seed.TrancheCount, seed.IntervalMinutes),
		SaleMint:           seed.SaleMint,
		PaymentDestination: seed.PaymentDestination,
		VestingOnly:        true,
	})
	if err != nil {
		log.Fatalf("> failed to initialize vesting sale: %v", err)
	}
	log.Infof("> vesting sale created: %s", sale.Address)

	if err := ledger.CreateAccount(config.DB, seed.SourceTokenAccount, seed.SaleMint, seed.Seller); err != nil {
		log.Fatalf("> failed to create source account: %v", err)
	}
	if err := ledger.Mint(config.DB, seed.SourceTokenAccount, seed.FundingAmount); err != nil {
		log.Fatalf("> failed to mint funding: %v", err)
	}
	if err := engine.FundSale(sale.Address, seed.SourceTokenAccount, seed.Seller, seed.FundingAmount); err != nil {
		log.Fatalf("> failed to fund sale: %v", err)
	}
	if err := engine.ActivateSale(sale.Address, seed.Authority); err != nil {
		log.Fatalf("> failed to activate sale: %v", err)
	}

	for _, g := range seed.Grants {
		if _, err := engine.InitVesting(sale.Address, g.Buyer); err != nil {
			log.Fatalf("> failed to init vesting for %s: %v", g.Buyer, err)
		}
		result, err := engine.ExecuteSale(business.PurchaseParams{
			SaleAddress:   sale.Address,
			Buyer:         g.Buyer,
			PaymentAmount: g.Amount,
		})
		if err != nil {
			log.Fatalf("> failed to allocate %d to %s: %v", g.Amount, g.Buyer, err)
		}
		log.Infof("> grant allocated: buyer=%s advance=%d vested=%d", g.Buyer, result.Advance, result.Vested)
	}

	log.Infof("> done, %d grants allocated through sale %s", len(seed.Grants), sale.Address)
}
