package healthdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akarpov/welltrack/internal/config"
)

// RemoteProvider читает образцы из внешнего агрегатора устройства по HTTP.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteProvider(cfg *config.Config) *RemoteProvider {
	timeoutSeconds := cfg.HealthProviderTimeoutS
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	return &RemoteProvider{
		baseURL: strings.TrimRight(cfg.HealthProviderBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *RemoteProvider) InitPermissions(ctx context.Context, spec PermissionSpec) (bool, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/permissions", strings.NewReader(string(body)))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return false, ErrPermission
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("permissions request failed with status %d", resp.StatusCode)
	}

	var parsed struct {
		Authorized bool `json:"authorized"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, err
	}
	return parsed.Authorized, nil
}

func (p *RemoteProvider) DailyStepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	return p.fetchSamples(ctx, "steps", from, to)
}

func (p *RemoteProvider) SleepSamples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	return p.fetchSamples(ctx, "sleep", from, to)
}

func (p *RemoteProvider) fetchSamples(ctx context.Context, kind string, from, to time.Time) ([]Sample, error) {
	query := url.Values{}
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))

	endpoint := fmt.Sprintf("%s/v1/samples/%s?%s", p.baseURL, kind, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrPermission
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("samples request failed with status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Samples []Sample `json:"samples"`
	}
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return nil, err
	}
	return parsed.Samples, nil
}
