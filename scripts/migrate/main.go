package main

import (
	"flag"

	"crowdvest/pkg/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	config.InitDB()

	if *down {
		config.RollbackMigration()
		return
	}
	config.ExecuteMigrations()
}
