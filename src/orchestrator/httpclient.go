package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"idproof/src/claims"
	"idproof/src/proof"
)

// HttpClient talks to the verification server over its REST boundary. It is
// both the challenge source and the proof sink of a session.
type HttpClient struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

func NewHttpClient(baseURL, accessToken string) *HttpClient {
	return &HttpClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: accessToken,
		Client:      http.DefaultClient,
	}
}

func (c *HttpClient) postJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HttpClient) FetchChallenge(ctx context.Context, circuitType string) (string, error) {
	var out struct {
		Nonce string `json:"nonce"`
	}
	err := c.postJSON(ctx, "/v1/proof-challenge", map[string]string{"circuit_type": circuitType}, &out)
	if err != nil {
		return "", err
	}
	if out.Nonce == "" {
		return "", fmt.Errorf("challenge response carried no nonce")
	}
	return out.Nonce, nil
}

func (c *HttpClient) SubmitProof(ctx context.Context, req proof.SubmitRequest) error {
	return c.postJSON(ctx, "/v1/proof", req, nil)
}

// PostClaims registers claim commitments ahead of a proving session.
func (c *HttpClient) PostClaims(ctx context.Context, req claims.IngestRequest) error {
	return c.postJSON(ctx, "/v1/claims", req, nil)
}
