package routing

import (
	"context"
	"fmt"
	"sort"

	"ninjamap/internal/maneuver"
	"ninjamap/internal/polyline"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// searchRadiusMeters is the per-waypoint snap radius hint sent to the
// provider.
const searchRadiusMeters = 50

// Assembler turns an ordered list of waypoints into normalized routes.
type Assembler struct {
	client *Client
}

// NewAssembler creates an Assembler backed by the given provider client.
func NewAssembler(client *Client) *Assembler {
	return &Assembler{client: client}
}

// Route calculates routes between the given points and returns the fastest.
func (a *Assembler) Route(ctx context.Context, points []RoutePoint, mode TransportMode) (*RouteResult, error) {
	results, err := a.Routes(ctx, points, mode)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Routes calculates all route alternatives between the given points, sorted
// ascending by total time. The first point is the origin, the last the
// destination, everything in between an ordered via point.
func (a *Assembler) Routes(ctx context.Context, points []RoutePoint, mode TransportMode) ([]*RouteResult, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}
	if !mode.IsValid() {
		mode = DefaultMode
	}

	resp, err := a.client.route(ctx, buildRequest(points, mode))
	if err != nil {
		return nil, err
	}
	if resp.Trip == nil {
		return nil, ErrNoRouteFound
	}

	trips := []*trip{resp.Trip}
	for _, alt := range resp.Alternates {
		if alt.Trip != nil {
			trips = append(trips, alt.Trip)
		}
	}

	results := make([]*RouteResult, 0, len(trips))
	for _, t := range trips {
		result, err := assembleTrip(t)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	// Fastest first; picking an alternate client-side is then a pure
	// re-index, no recomputation.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Time < results[j].Time
	})

	return results, nil
}

func buildRequest(points []RoutePoint, mode TransportMode) routeRequest {
	req := routeRequest{
		From:      toRequestPoint(points[0]),
		To:        toRequestPoint(points[len(points)-1]),
		Costing:   mode.Costing(),
		UseFerry:  1,
		FerryCost: 300,
	}
	for _, p := range points[1 : len(points)-1] {
		req.Via = append(req.Via, toRequestPoint(p))
	}
	return req
}

func toRequestPoint(p RoutePoint) requestPoint {
	return requestPoint{
		Lat:          p.Lat,
		Lon:          p.Lng,
		SearchTerm:   p.Address,
		SearchRadius: searchRadiusMeters,
	}
}

// assembleTrip decodes per-leg shapes into one coordinate sequence, aligns
// maneuvers to offsets in it and normalizes units. Legs are concatenated
// verbatim; the provider does not share boundary points between legs.
func assembleTrip(t *trip) (*RouteResult, error) {
	line := orb.LineString{}
	var steps []DirectionStep

	for _, leg := range t.Legs {
		offset := len(line)

		shape, err := polyline.Decode(leg.Shape, polyline.Precision6)
		if err != nil {
			return nil, fmt.Errorf("decoding leg shape: %w", err)
		}
		line = append(line, shape...)

		for _, m := range leg.Maneuvers {
			c := maneuver.Classify(m.Type)
			// Provider units are km and s, the client wants m and ms.
			step := DirectionStep{
				Text:         m.Instruction,
				Distance:     m.Length * 1000,
				Time:         int64(m.Time * 1000),
				Sign:         c.Sign,
				StreetNames:  m.StreetNames,
				ManeuverType: c.Label,
			}
			// Anchor to the concatenated geometry; an out-of-range shape
			// index drops the anchor, not the route.
			if i := offset + m.BeginShapeIndex; i >= offset && i < len(line) {
				p := line[i]
				step.Location = &p
			}
			steps = append(steps, step)
		}
	}

	feature := geojson.NewFeature(line)

	// Trip totals come from the provider summary, not from re-summing steps.
	return &RouteResult{
		Distance:     t.Summary.Length * 1000,
		Time:         int64(t.Summary.Time * 1000),
		Instructions: steps,
		Geometry:     feature,
	}, nil
}
