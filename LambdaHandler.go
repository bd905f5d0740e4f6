package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	log "github.com/sirupsen/logrus"

	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/config"
	"github.com/akmcyber/sitepatch/reporters"
	"github.com/akmcyber/sitepatch/repositories"
	"github.com/akmcyber/sitepatch/scanners"
	"github.com/akmcyber/sitepatch/utils"
)

// LambdaRequest represents the expected JSON structure in the request body
type LambdaRequest struct {
	Repo   string `json:"repo"`
	Checks string `json:"checks"`
}

// Handler audits a site repository on demand behind API Gateway and
// returns the summary report.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if err := authorize(ctx, request); err != nil {
		log.Printf("Rejected request: %v", err)
		return toAPIGatewayResponse(401, `{"error": "Unauthorized."}`), nil
	}

	var lambdaReq LambdaRequest
	if err := json.Unmarshal([]byte(request.Body), &lambdaReq); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return toAPIGatewayResponse(400, `{"error": "Invalid JSON format."}`), nil
	}

	if lambdaReq.Repo == "" {
		errMsg := "The 'repo' field is required in the JSON request."
		log.Println(errMsg)
		return toAPIGatewayResponse(400, fmt.Sprintf(`{"error": "%s"}`, errMsg)), nil
	}

	checkName := lambdaReq.Checks
	if checkName == "" {
		checkName = "all"
	}

	jsonReport, err := AuditRepo(lambdaReq.Repo, checkName)
	if err != nil {
		log.Printf("Error auditing repository: %v", err)
		errorBody, _ := json.Marshal(map[string]string{"error": err.Error()})
		return toAPIGatewayResponse(500, string(errorBody)), nil
	}

	return toAPIGatewayResponse(200, jsonReport), nil
}

func toAPIGatewayResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            body,
		IsBase64Encoded: false,
	}
}

// authorize checks the caller's token against the one stored in SSM
// Parameter Store. With no SSM_PARAMETER_PREFIX configured the function
// is open, which is the local-testing mode.
func authorize(ctx context.Context, request events.APIGatewayProxyRequest) error {
	if os.Getenv("SSM_PARAMETER_PREFIX") == "" {
		return nil
	}

	userID := request.Headers["x-user-id"]
	token := request.Headers["x-api-token"]
	if userID == "" || token == "" {
		return fmt.Errorf("missing x-user-id or x-api-token header")
	}

	stored, err := getStoredToken(ctx, userID)
	if err != nil {
		return err
	}
	if stored != token {
		return fmt.Errorf("token mismatch for user '%s'", userID)
	}
	return nil
}

// getStoredToken retrieves the stored token for a given userID from SSM
// Parameter Store.
func getStoredToken(ctx context.Context, userID string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	svc := ssm.NewFromConfig(cfg)

	paramPrefix := os.Getenv("SSM_PARAMETER_PREFIX")
	paramName := fmt.Sprintf("%s%s", paramPrefix, userID)

	input := &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	}
	result, err := svc.GetParameter(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve parameter '%s': %w", paramName, err)
	}
	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter '%s' has no value", paramName)
	}
	return *result.Parameter.Value, nil
}

// AuditRepo clones the repository, runs the requested audits and
// returns the summary JSON report.
func AuditRepo(repoURL string, checkName string) (string, error) {
	queries, err := loadQueries()
	if err != nil {
		return "", fmt.Errorf("failed to load queries: %w", err)
	}

	cfg := config.Default()
	corpus, err := scanners.NewCorpusScanner(cfg.Extensions, cfg.Deny, cfg.Include)
	if err != nil {
		return "", fmt.Errorf("failed to build corpus scanner: %w", err)
	}

	repository := repositories.NewFileBasedFindingRepository()
	defer func() {
		if err := repository.Clear(); err != nil {
			log.Errorf("Error clearing repository: %v", err)
		}
	}()

	reporter := reporters.JsonReporter{
		Queries:        queries,
		ArtifactPrefix: ArtifactPrefix,
		OutputDir:      os.TempDir(),
	}

	site := scanners.NewSiteScanner(
		reporter,
		checks.ChecksByName(checkName),
		repository,
		corpus,
		utils.NullProgressReporter{},
	)

	if _, err := scanners.NewRepoScanner(site).Scan(repoURL); err != nil {
		return "", err
	}

	reportFilePath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s", ArtifactPrefix, reporters.DefaultJsonSummaryReport))
	reportData, err := os.ReadFile(reportFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read JSON report: %w", err)
	}
	return string(reportData), nil
}
