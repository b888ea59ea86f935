package main

import (
	"flag"

	"crowdvest/pkg/solana"

	log "github.com/sirupsen/logrus"
)

// Generates operator keypairs (seller authorities, payment destinations) and
// writes them encrypted into the keystore directory.
func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	count := flag.Int("count", 1, "number of keypairs to generate")
	password := flag.String("password", "", "keystore password")
	flag.Parse()

	if *password == "" {
		log.Fatal("> -password is required")
	}

	ks := solana.NewKeystore()
	for i := 0; i < *count; i++ {
		account, err := ks.GenerateKey()
		if err != nil {
			log.Fatalf("> failed to generate key: %v", err)
		}
		if err := ks.Save(account, *password); err != nil {
			log.Fatalf("> failed to save key: %v", err)
		}
		log.Infof("> generated %s", account.PublicKey.ToBase58())
	}
}
