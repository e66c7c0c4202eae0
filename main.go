package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Ampere/internal/api"
	"Ampere/internal/auth"
	"Ampere/internal/calc/arrester"
	"Ampere/internal/calc/basics"
	"Ampere/internal/calc/batch"
	"Ampere/internal/calc/battery"
	"Ampere/internal/calc/breaker"
	"Ampere/internal/calc/cable"
	"Ampere/internal/calc/demand"
	"Ampere/internal/calc/earthing"
	"Ampere/internal/calc/importer"
	"Ampere/internal/calc/lighting"
	"Ampere/internal/calc/power"
	"Ampere/internal/calc/report"
	"Ampere/internal/calc/solar"
	"Ampere/internal/calc/ups"
	"Ampere/internal/logging"
	"Ampere/internal/project"
	"Ampere/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	dbRepo := repo.NewPostgresDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		logging.Logger.Fatal().Msg("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: dbRepo}
	projectH := &project.Handler{Repo: dbRepo}

	limiter := auth.NewIPRateLimiter(5, 20)

	apiRouter := mux.PathPrefix("/api").Subrouter()
	apiRouter.Use(limiter.LimitMiddleware)
	apiRouter.Use(api.Recover)

	apiRouter.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	apiRouter.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	batteryH := &battery.Handler{}
	upsH := &ups.Handler{}
	cableH := &cable.Handler{}
	breakerH := &breaker.Handler{}
	earthingH := &earthing.Handler{}
	arresterH := &arrester.Handler{}
	demandH := &demand.Handler{}
	lightingH := &lighting.Handler{}
	solarH := &solar.Handler{}
	powerH := &power.Handler{}
	basicsH := &basics.Handler{}

	apiRouter.HandleFunc("/battery/calculate", batteryH.Calc).Methods("POST")
	apiRouter.HandleFunc("/ups/calculate", upsH.Calc).Methods("POST")
	apiRouter.HandleFunc("/cable/calculate", cableH.Calc).Methods("POST")
	apiRouter.HandleFunc("/breaker/calculate", breakerH.Calc).Methods("POST")
	apiRouter.HandleFunc("/earthing/calculate", earthingH.Calc).Methods("POST")
	apiRouter.HandleFunc("/arrester/calculate", arresterH.Calc).Methods("POST")
	apiRouter.HandleFunc("/demand/calculate", demandH.Calc).Methods("POST")
	apiRouter.HandleFunc("/lighting/calculate", lightingH.Calc).Methods("POST")
	apiRouter.HandleFunc("/solar/calculate", solarH.Calc).Methods("POST")
	apiRouter.HandleFunc("/power/calculate", powerH.Calc).Methods("POST")
	apiRouter.HandleFunc("/basics/calculate", basicsH.Calc).Methods("POST")

	reportH := &report.Handler{Auditor: &project.ExportAuditor{Repo: dbRepo}}
	apiRouter.Handle("/{calculator}/generate-report",
		authEnv.OptionalAuth(http.HandlerFunc(reportH.Generate))).Methods("POST")

	secureApi := apiRouter.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/projects", projectH.CreateProject).Methods("POST")
	secureApi.HandleFunc("/projects", projectH.ListProjects).Methods("GET")
	secureApi.HandleFunc("/projects/{id:[0-9]+}", projectH.DeleteProject).Methods("DELETE")

	secureApi.HandleFunc("/sessions", projectH.SaveSession).Methods("POST")
	secureApi.HandleFunc("/sessions", projectH.ListSessions).Methods("GET")
	secureApi.HandleFunc("/sessions/{id}", projectH.GetSession).Methods("GET")
	secureApi.HandleFunc("/sessions/{id}", projectH.DeleteSession).Methods("DELETE")

	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	secureApi.HandleFunc("/batch/breaker", batchH.Breaker).Methods("POST")
	secureApi.HandleFunc("/import/demand", importerH.Demand).Methods("POST")
}

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Warn().Msg("no .env file, using environment")
	}
	logging.Init(os.Getenv("LOG_LEVEL"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	router := mux.NewRouter()
	HandleList(router, db)
	handler := CORS(router)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logging.Logger.Info().Str("addr", addr).Msg("starting server")
		cert, key := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY")
		var err error
		if cert != "" && key != "" {
			err = server.ListenAndServeTLS(cert, key)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logging.Logger.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logging.Logger.Info().Msg("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal().Err(err).Msg("server shutdown")
	}
	logging.Logger.Info().Msg("server stopped")

	wg.Wait()
}
