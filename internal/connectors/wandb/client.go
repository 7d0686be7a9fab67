package wandb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the public W&B GraphQL endpoint.
	DefaultBaseURL = "https://api.wandb.ai/graphql"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is how many runs are requested per page.
	DefaultPageSize = 50

	// Conservative throttle, well under the API's published limits.
	requestsPerSecond = 2.0
	burstSize         = 4
)

// EnvAPIKey is the environment variable holding the W&B API key.
const EnvAPIKey = "WANDB_API_KEY"

// Ensure Client implements the RunSource port.
var _ driven.RunSource = (*Client)(nil)

// Client is a W&B API client scoped to run listing.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Useful for testing and
// self-hosted W&B deployments.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize overrides the runs-per-page count.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// NewClient creates a W&B client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// projectRunsQuery pages through all runs of a project.
const projectRunsQuery = `
query ProjectRuns($entity: String!, $project: String!, $first: Int!, $after: String) {
  project(entityName: $entity, name: $project) {
    runs(first: $first, after: $after) {
      edges {
        node {
          name
          state
          user { username }
          config
          summaryMetrics
        }
        cursor
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type runNode struct {
	Name  string `json:"name"`
	State string `json:"state"`
	User  struct {
		Username string `json:"username"`
	} `json:"user"`
	Config         string `json:"config"`
	SummaryMetrics string `json:"summaryMetrics"`
}

type runsPage struct {
	Edges []struct {
		Node   runNode `json:"node"`
		Cursor string  `json:"cursor"`
	} `json:"edges"`
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
}

type graphqlResponse struct {
	Data struct {
		Project *struct {
			Runs runsPage `json:"runs"`
		} `json:"project"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Runs returns all runs under the given team/project scope, in the
// API's iteration order.
func (c *Client) Runs(ctx context.Context, scope domain.Scope) ([]domain.Run, error) {
	var all []domain.Run
	var cursor string

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		page, err := c.fetchPage(ctx, scope, cursor)
		if err != nil {
			return nil, err
		}

		for _, edge := range page.Edges {
			run, err := toRun(edge.Node)
			if err != nil {
				return nil, fmt.Errorf("decode run %q: %w", edge.Node.Name, err)
			}
			all = append(all, run)
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	return all, nil
}

// fetchPage requests one page of runs.
func (c *Client) fetchPage(ctx context.Context, scope domain.Scope, after string) (*runsPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	variables := map[string]any{
		"entity":  scope.Team,
		"project": scope.Project,
		"first":   c.pageSize,
	}
	if after != "" {
		variables["after"] = after
	}

	body, err := json.Marshal(graphqlRequest{Query: projectRunsQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.SetBasicAuth("api", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list runs for %s: %w", scope.Path(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(snippet))}
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			messages[i] = e.Message
		}
		return nil, &GraphQLError{Messages: messages}
	}

	if gqlResp.Data.Project == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, scope.Path())
	}

	return &gqlResp.Data.Project.Runs, nil
}

// toRun maps an API run node to the domain type.
func toRun(node runNode) (domain.Run, error) {
	config, err := decodeJSONMap(node.Config)
	if err != nil {
		return domain.Run{}, fmt.Errorf("config: %w", err)
	}

	summary, err := decodeJSONMap(node.SummaryMetrics)
	if err != nil {
		return domain.Run{}, fmt.Errorf("summary: %w", err)
	}

	return domain.Run{
		ID:      node.Name,
		State:   domain.RunState(node.State),
		User:    node.User.Username,
		Config:  unwrapConfig(config),
		Summary: summary,
	}, nil
}

// decodeJSONMap parses the JSON-string-encoded maps the API returns
// for config and summaryMetrics. Empty strings decode to empty maps.
func decodeJSONMap(s string) (map[string]any, error) {
	if s == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// unwrapConfig flattens the API's config encoding, where each entry is
// wrapped as {"value": ..., "desc": ...}. Entries without the wrapper
// pass through unchanged.
func unwrapConfig(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for key, raw := range config {
		if wrapper, ok := raw.(map[string]any); ok {
			if value, ok := wrapper["value"]; ok {
				out[key] = value
				continue
			}
		}
		out[key] = raw
	}
	return out
}
