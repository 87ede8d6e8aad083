package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/waypointhq/waypoint/internal/metrics"
	"github.com/waypointhq/waypoint/internal/models"
)

const (
	// ProductHuntEndpoint is the Product Hunt GraphQL API endpoint.
	ProductHuntEndpoint = "https://api.producthunt.com/v2/api/graphql"

	// productHuntUserAgent identifies this client to the Product Hunt API.
	productHuntUserAgent = "Waypoint/1.0"

	// productHuntTimeout bounds a single GraphQL request.
	productHuntTimeout = 10 * time.Second
)

// productHuntQuery fetches ranked posts for a topic with their topic tags.
const productHuntQuery = `
query ($topic: String!, $limit: Int!) {
  posts(topic: $topic, order: RANKING, first: $limit) {
    edges {
      node {
        id
        name
        tagline
        description
        votesCount
        website
        url
        createdAt
        topics {
          edges {
            node {
              name
            }
          }
        }
      }
    }
  }
}
`

// ProductHuntClient implements evidence.ProductDiscoverer against the
// Product Hunt GraphQL API.
type ProductHuntClient struct {
	token    string
	endpoint string
	client   *http.Client
	metrics  *metrics.Collector
}

// NewProductHuntClient creates a Product Hunt discovery client.
func NewProductHuntClient(token string, mc *metrics.Collector) (*ProductHuntClient, error) {
	if token == "" {
		return nil, fmt.Errorf("API token required for Product Hunt")
	}

	return &ProductHuntClient{
		token:    token,
		endpoint: ProductHuntEndpoint,
		client:   &http.Client{Timeout: productHuntTimeout},
		metrics:  mc,
	}, nil
}

// Source identifies results from this adapter.
func (c *ProductHuntClient) Source() string {
	return "producthunt"
}

// graphqlRequest is the standard GraphQL-over-HTTP request envelope.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// productHuntResponse mirrors the nested edge/node shape of the posts query.
type productHuntResponse struct {
	Data struct {
		Posts struct {
			Edges []struct {
				Node struct {
					Name        string `json:"name"`
					Tagline     string `json:"tagline"`
					Description string `json:"description"`
					VotesCount  int    `json:"votesCount"`
					Website     string `json:"website"`
					URL         string `json:"url"`
					Topics      struct {
						Edges []struct {
							Node struct {
								Name string `json:"name"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"topics"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// SearchByTopic returns ranked Product Hunt posts for a topic keyword.
func (c *ProductHuntClient) SearchByTopic(ctx context.Context, topic string, limit int) ([]models.Product, error) {
	start := time.Now()

	products, err := c.searchByTopic(ctx, topic, limit)
	if err != nil {
		c.metrics.RecordFailure(metrics.OpProductDiscovery)
		return nil, err
	}
	c.metrics.RecordTiming(metrics.OpProductDiscovery, time.Since(start))
	return products, nil
}

func (c *ProductHuntClient) searchByTopic(ctx context.Context, topic string, limit int) ([]models.Product, error) {
	reqBody := graphqlRequest{
		Query: productHuntQuery,
		Variables: map[string]any{
			"topic": topic,
			"limit": limit,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", productHuntUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("producthunt API error (status %d): %s", resp.StatusCode, string(body))
	}

	var phResp productHuntResponse
	if err := json.NewDecoder(resp.Body).Decode(&phResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(phResp.Errors) > 0 {
		return nil, fmt.Errorf("producthunt GraphQL error: %s", phResp.Errors[0].Message)
	}

	products := make([]models.Product, 0, len(phResp.Data.Posts.Edges))
	for _, edge := range phResp.Data.Posts.Edges {
		node := edge.Node

		topics := make([]string, 0, len(node.Topics.Edges))
		for _, t := range node.Topics.Edges {
			topics = append(topics, t.Node.Name)
		}

		products = append(products, models.Product{
			Name:        node.Name,
			Tagline:     node.Tagline,
			Description: node.Description,
			Website:     node.Website,
			PostURL:     node.URL,
			Votes:       node.VotesCount,
			Topics:      topics,
		})
	}

	return products, nil
}
