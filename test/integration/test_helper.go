package integration

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crowdvest/internal/events"
	"crowdvest/internal/handlers"
	"crowdvest/internal/handlers/business"
	"crowdvest/internal/models"
	"crowdvest/internal/routes"
	dbconfig "crowdvest/pkg/config"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestServer wires the full stack against an in-memory database and
// returns the server plus the ledger for balance seeding.
func newTestServer(t *testing.T) (*httptest.Server, *custody.Ledger, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Sale{},
		&models.Vesting{},
		&models.CustodyAccount{},
		&models.SaleEventLog{},
		&models.VestingMaturityRecord{},
	); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	// Handlers read through the package-level connection.
	dbconfig.DB = db

	ledger := custody.NewLedger()
	engine := business.NewEngine(db, ledger, solana.NewProgramDeriver())
	hub := events.NewHub()
	engine.Notifier = hub
	handlers.Init(engine)

	server := httptest.NewServer(routes.SetupRouter(hub))
	t.Cleanup(server.Close)
	return server, ledger, db
}
