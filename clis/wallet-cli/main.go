package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"time"

	"idproof/src/claims"
	"idproof/src/merkle"
	"idproof/src/model"
	"idproof/src/orchestrator"
	"idproof/src/zkengine"
)

// wallet-cli drives one full proving session against a running server:
// registers claim commitments, fetches challenges, generates the proofs
// locally and submits them for verification.
func main() {
	var (
		base        = flag.String("base", "http://localhost:9000", "server base URL")
		token       = flag.String("token", "", "bearer access token")
		documentId  = flag.String("doc", "doc-1", "document id")
		document    = flag.String("document", "", "path to the document file the claims derive from")
		dobDays     = flag.Int64("dob-days", 0, "date of birth as days since the unix epoch")
		expiryDays  = flag.Int64("expiry-days", 0, "document expiry as days since the unix epoch")
		nationality = flag.Int64("nationality", 0, "ISO 3166-1 numeric nationality code")
		score       = flag.Int64("score", 0, "face-match score, fixed point with 4 decimals")
		group       = flag.String("group", "EU", "nationality group to prove membership of")
		secret      = flag.String("secret", "", "binding secret, decimal")
		timeout     = flag.Duration("timeout", 5*time.Minute, "session timeout")
	)
	flag.Parse()

	if *token == "" || *document == "" || *dobDays == 0 || *expiryDays == 0 ||
		*nationality == 0 || *score == 0 || *secret == "" {
		flag.Usage()
		os.Exit(2)
	}

	documentBytes, err := os.ReadFile(*document)
	if err != nil {
		fail("read document: %v", err)
	}
	docHash := claims.DocumentHashField(documentBytes)

	bindingSecret, ok := new(big.Int).SetString(*secret, 10)
	if !ok {
		fail("binding secret is not a decimal integer")
	}
	userIdHash, err := claims.HashFields(bindingSecret)
	if err != nil {
		fail("derive user id hash: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := orchestrator.NewHttpClient(*base, *token)

	if err := ingestClaims(ctx, client, *documentId, docHash, *dobDays, *expiryDays, *nationality, *score); err != nil {
		fail("ingest claims: %v", err)
	}
	fmt.Println("claim commitments registered")

	bundle := &orchestrator.ClaimBundle{
		DocumentId:      *documentId,
		DocumentHash:    docHash,
		DateOfBirthDays: big.NewInt(*dobDays),
		ExpiryDays:      big.NewInt(*expiryDays),
		NationalityCode: big.NewInt(*nationality),
		FaceScoreFixed:  big.NewInt(*score),
		BindingSecret:   bindingSecret,
		UserIdHash:      userIdHash,
		Group:           *group,
	}

	fmt.Println("compiling circuits and generating proofs, this can take a while...")
	engine := zkengine.NewGnarkEngine(zkengine.NewArtifactManager())
	session := orchestrator.New(client, engine, client, merkle.NewAccumulator(), orchestrator.DefaultSessionPolicy())

	results, err := session.Run(ctx, bundle)
	if err != nil {
		fail("proving session: %v", err)
	}

	for _, result := range results {
		fmt.Printf("%-28s proved in %dms, %d public signals\n",
			result.CircuitType, result.GenerationTimeMs, len(result.PublicSignals))
	}
	fmt.Println("all proofs submitted and verified")
}

func ingestClaims(ctx context.Context, client *orchestrator.HttpClient, documentId string, docHash *big.Int, dobDays, expiryDays, nationality, score int64) error {
	req := claims.IngestRequest{
		DocumentId:   documentId,
		DocumentHash: docHash.String(),
		Claims: []claims.ClaimInput{
			{SemanticType: model.SemanticAge, Value: big.NewInt(dobDays).String()},
			{SemanticType: model.SemanticDocValidity, Value: big.NewInt(expiryDays).String()},
			{SemanticType: model.SemanticNationality, Value: big.NewInt(nationality).String()},
			{SemanticType: model.SemanticFaceMatch, Value: big.NewInt(score).String()},
		},
	}
	return client.PostClaims(ctx, req)
}

func fail(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}
