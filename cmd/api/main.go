package main

import (
	"fmt"
	"net/http"

	"github.com/onsite-hq/onsite-backend-go/internal/config"
	appHTTP "github.com/onsite-hq/onsite-backend-go/internal/handler/http"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/cron"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/jwt"
	"github.com/onsite-hq/onsite-backend-go/internal/repository/postgresql"
	compTimeService "github.com/onsite-hq/onsite-backend-go/internal/service/comptime"
	leaveService "github.com/onsite-hq/onsite-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	entryRepo := postgresql.NewCompTimeEntryRepository(db)
	usageRepo := postgresql.NewCompTimeUsageRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	ledger := compTimeService.NewLedgerService(entryRepo, usageRepo)
	balanceCalculator := leaveService.NewBalanceService(policyRepo, overrideRepo, leaveRequestRepo)
	requestService := leaveService.NewRequestService(transactor, leaveRequestRepo, balanceCalculator, ledger)
	policyService := leaveService.NewPolicyService(policyRepo, overrideRepo)

	leaveHandler := appHTTP.NewLeaveHandler(requestService)
	compTimeHandler := appHTTP.NewCompTimeHandler(ledger)
	policyHandler := appHTTP.NewPolicyHandler(policyService)

	scheduler := cron.NewScheduler()
	cron.NewCompTimeJobs(ledger).RegisterJobs(scheduler, cfg.Sweep.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		leaveHandler,
		compTimeHandler,
		policyHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
