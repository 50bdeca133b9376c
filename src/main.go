package main

import (
	"time"

	"idproof/pkg/appbuilder"
	"idproof/pkg/logger"
	"idproof/pkg/rabbitmq"
	"idproof/pkg/rest"
	"idproof/src/challenge"
	"idproof/src/claims"
	"idproof/src/database"
	"idproof/src/merkle"
	"idproof/src/middleware"
	"idproof/src/outbox"
	"idproof/src/proof"
	"idproof/src/zkengine"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// @title           Claim Proof Pipeline API
// @version         1.0
// @description     Issues proof challenges, verifies zero-knowledge claim proofs and persists verified records
// @host            localhost:9000
// @BasePath        /v1
func main() {
	var (
		keySet           jwk.Set
		allowedOrigin    string
		claimsHandler    *claims.Handler
		challengeHandler *challenge.Handler
		proofHandler     *proof.Handler
	)

	appbuilder.New[ApiConfigJson, ApiConfig]().
		InitLogger(logger.GlobalLoggerConfig{}).
		ResolveEnvironment().
		LoadConfig("config.json").
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- DATABASE + MIGRATIONS -----
			database.InitializeDatabaseConnection(a.Config.DatabaseConf.ConnectionString)
			database.RunMigrations()
			db := database.GetDatabaseConnection()

			// ----- AUTH KEYS -----
			var err error
			keySet, err = jwk.ReadFile(a.Config.AuthConf.JwksFile)
			if err != nil {
				a.Logger.Fatal(err, "Could not load trusted JWKS")
			}
			allowedOrigin = a.Config.RestConf.AllowedOrigin

			// ----- ZK ENGINE -----
			artifacts := zkengine.NewArtifactManager()
			go func() {
				if err := artifacts.WarmUp(); err != nil {
					logger.Default().Error(err, "Circuit artifact warm-up failed, verification will fail closed")
				}
			}()
			engine := zkengine.NewGnarkEngine(artifacts)
			accumulator := merkle.NewAccumulator()

			// ----- POLICY -----
			policy := proof.DefaultPolicy()
			if a.Config.PolicyConf.MinimumAge > 0 {
				policy.MinimumAge = a.Config.PolicyConf.MinimumAge
			}
			if a.Config.PolicyConf.FaceMatchThreshold > 0 {
				policy.FaceMatchThreshold = a.Config.PolicyConf.FaceMatchThreshold
			}
			if a.Config.PolicyConf.ApprovedGroup != "" {
				policy.ApprovedGroup = a.Config.PolicyConf.ApprovedGroup
			}

			// ----- SERVICES -----
			challengeService := challenge.NewService(
				challenge.NewRepository(db),
				time.Duration(a.Config.PolicyConf.ChallengeTtlSec)*time.Second,
			)
			claimsHandler = claims.Build(db)
			challengeHandler = challenge.NewHandler(challengeService)
			proofHandler = proof.Build(db, challengeService, engine, accumulator, policy)
		}).

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries().
		WithOption(func(a *appbuilder.AppBuilder[ApiConfigJson, ApiConfig]) {
			// ----- RABBITMQ LOGGING SINK -----
			logPublisher := rabbitmq.GetPublisher("LogPublisher")
			logSink := rabbitmq.CreateRabbitmqLoggerSink(logPublisher)
			logger.AddSinkToLoggerInstance(logger.Default(), logSink)
		}).

		// ----- WORKERS -----
		AddWorkerServices(
			challenge.NewGcWorker(challenge.NewRepository(database.GetDatabaseConnection())),
			outbox.NewWorker(outbox.NewRepository(database.GetDatabaseConnection())),
			claims.NewRevocationWorker(claims.NewRepository(database.GetDatabaseConnection())),
		).

		// ----- MIDDLEWARE -----
		AddGinMiddleware(
			rest.NewMiddleware("*", middleware.RequestLogger()),
			rest.NewMiddleware("*", middleware.CORSMiddleware(allowedOrigin)),
			rest.NewMiddleware("v1", middleware.AuthMiddleware(keySet)),
		).

		// ----- ROUTES -----
		AddGinRoutes(
			rest.NewRoute(rest.POST, "v1", "claims", claimsHandler.IngestClaims),
			rest.NewRoute(rest.GET, "v1", "claims/:document_id", claimsHandler.ListCommitments),
			rest.NewRoute(rest.DELETE, "v1", "claims/:document_id", claimsHandler.RevokeDocument),
			rest.NewRoute(rest.POST, "v1", "proof-challenge", challengeHandler.IssueChallenge),
			rest.NewRoute(rest.POST, "v1", "proof", proofHandler.SubmitProof),
			rest.NewRoute(rest.GET, "v1", "proof/:document_id/:circuit_type/status", proofHandler.GetProofStatus),
		).
		AddSwagger().
		InitGinRouter().
		Build().
		Start()
}
