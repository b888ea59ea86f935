package main

import (
	"encoding/json"
	"flag"
	"os"

	"crowdvest/internal/handlers/business"
	"crowdvest/internal/models"
	"crowdvest/pkg/config"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"

	log "github.com/sirupsen/logrus"
)

// saleSeed is one sale definition from the seed file. Funding tokens are
// minted into the seller's source account before the sale is funded.
type saleSeed struct {
	Seller             string                  `json:"seller"`
	Sequence           uint64                  `json:"sequence"`
	Authority          string                  `json:"authority"`
	PriceNumerator     uint64                  `json:"price_numerator"`
	PriceDenominator   uint64                  `json:"price_denominator"`
	PaymentMinAmount   uint64                  `json:"payment_min_amount"`
	AdvanceFractionBps uint16                  `json:"advance_fraction_bps"`
	ReleaseSchedule    []models.ReleaseTranche `json:"release_schedule"`
	SaleMint           string                  `json:"sale_mint"`
	PaymentDestination string                  `json:"payment_destination"`
	VestingOnly        bool                    `json:"vesting_only"`
	SourceTokenAccount string                  `json:"source_token_account"`
	FundingAmount      uint64                  `json:"funding_amount"`
	Activate           bool                    `json:"activate"`
}

type seedFile struct {
	Sales []saleSeed `json:"sales"`
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	path := flag.String("file", "seed_sales.json", "path to the sale seed file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("> failed to read seed file %s: %v", *path, err)
	}
	var seeds seedFile
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatalf("> failed to parse seed file: %v", err)
	}
	if len(seeds.Sales) == 0 {
		log.Fatal("> seed file contains no sales")
	}

	config.InitDB()
	ledger := custody.NewLedger()
	engine := business.NewEngine(config.DB, ledger, solana.NewProgramDeriver())

	for _, seed := range seeds.Sales {
		sale, err := engine.InitializeSale(business.InitializeSaleParams{
			Seller:             seed.Seller,
			Sequence:           seed.Sequence,
			Authority:          seed.Authority,
			PriceNumerator:     seed.PriceNumerator,
			PriceDenominator:   seed.PriceDenominator,
			PaymentMinAmount:   seed.PaymentMinAmount,
			AdvanceFractionBps: seed.AdvanceFractionBps,
			ReleaseSchedule:    seed.ReleaseSchedule,
			SaleMint:           seed.SaleMint,
			PaymentDestination: seed.PaymentDestination,
			VestingOnly:        seed.VestingOnly,
		})
		if err != nil {
			log.Fatalf("> failed to initialize sale (seller %s, seq %d): %v", seed.Seller, seed.Sequence, err)
		}
		log.Infof("> sale created: %s (mint %s)", sale.Address, sale.SaleMint)

		if seed.FundingAmount > 0 {
			if err := ledger.CreateAccount(config.DB, seed.SourceTokenAccount, seed.SaleMint, seed.Seller); err != nil {
				log.Fatalf("> failed to create source account %s: %v", seed.SourceTokenAccount, err)
			}
			if err := ledger.Mint(config.DB, seed.SourceTokenAccount, seed.FundingAmount); err != nil {
				log.Fatalf("> failed to mint funding into %s: %v", seed.SourceTokenAccount, err)
			}
			if err := engine.FundSale(sale.Address, seed.SourceTokenAccount, seed.Seller, seed.FundingAmount); err != nil {
				log.Fatalf("> failed to fund sale %s: %v", sale.Address, err)
			}
			log.Infof("> sale funded: %s with %d tokens", sale.Address, seed.FundingAmount)
		}

		if seed.Activate {
			if err := engine.ActivateSale(sale.Address, seed.Authority); err != nil {
				log.Fatalf("> failed to activate sale %s: %v", sale.Address, err)
			}
			log.Infof("> sale activated: %s", sale.Address)
		}
	}

	log.Infof("> done, %d sales seeded", len(seeds.Sales))
}
