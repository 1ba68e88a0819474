package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"ninjamap/internal/config"
)

// Wire types for the routing provider. The request shape must stay
// compatible with the provider's contract.

type requestPoint struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	SearchTerm   string  `json:"search_term,omitempty"`
	SearchRadius int     `json:"search_radius"`
}

type routeRequest struct {
	From      requestPoint   `json:"from"`
	To        requestPoint   `json:"to"`
	Via       []requestPoint `json:"via,omitempty"`
	Costing   string         `json:"costing"`
	UseFerry  int            `json:"use_ferry"`
	FerryCost int            `json:"ferry_cost"`
}

type tripManeuver struct {
	Instruction     string   `json:"instruction"`
	Length          float64  `json:"length"` // kilometers
	Time            float64  `json:"time"`   // seconds
	Type            int      `json:"type"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	StreetNames     []string `json:"street_names,omitempty"`

	VerbalPreTransitionInstruction string `json:"verbal_pre_transition_instruction,omitempty"`
}

type tripLeg struct {
	Shape     string         `json:"shape"`
	Maneuvers []tripManeuver `json:"maneuvers"`
}

type tripSummary struct {
	Length float64 `json:"length"` // kilometers
	Time   float64 `json:"time"`   // seconds
}

type trip struct {
	Summary tripSummary `json:"summary"`
	Legs    []tripLeg   `json:"legs"`
}

type alternate struct {
	Trip *trip `json:"trip"`
}

type routeResponse struct {
	Trip       *trip       `json:"trip"`
	Alternates []alternate `json:"alternates,omitempty"`
}

// Client talks to the external routing provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client for the given provider URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.RoutingTimeout,
		},
	}
}

// route submits a routing request and classifies transport-level failures
// into the package error taxonomy.
func (c *Client) route(ctx context.Context, req routeRequest) (*routeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrUnknownRouting, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnknownRouting, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, c.baseURL)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: provider returned status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnknownRouting, resp.StatusCode, detail)
	}

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnknownRouting, err)
	}

	return &parsed, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrTimeout, config.RoutingTimeout)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w after %s", ErrTimeout, config.RoutingTimeout)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: request cancelled", ErrNetwork)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
