// Package search resolves free-text queries to map coordinates. The remote
// geocoder is authoritative; an offline places table imported from OSM
// covers geocoder outages.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ninjamap/internal/config"
	"ninjamap/internal/model"
	redis_client "ninjamap/internal/redis"

	"gorm.io/gorm"
)

// cacheTTL bounds how long geocoder responses are reused.
const cacheTTL = 10 * time.Minute

// Result is a single search hit, ready to become a route waypoint.
type Result struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Importance float64 `json:"importance"`
}

// nominatimResult mirrors the geocoder's JSON. Lat/lon arrive as strings.
type nominatimResult struct {
	DisplayName string  `json:"display_name"`
	Name        string  `json:"name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Importance  float64 `json:"importance"`
}

// SearchService queries the geocoder with a places-table fallback.
type SearchService struct {
	geocoderURL string
	httpClient  *http.Client
	db          *gorm.DB
}

// NewSearchService creates a search service. db may be nil when no offline
// fallback is available.
func NewSearchService(geocoderURL string, db *gorm.DB) *SearchService {
	return &SearchService{
		geocoderURL: geocoderURL,
		httpClient: &http.Client{
			Timeout: config.GeocoderTimeout,
		},
		db: db,
	}
}

// Search resolves a query to at most limit results. Falls back to the
// places table when the geocoder fails or returns nothing.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	if cached, ok := cachedResults(query, limit); ok {
		return cached, nil
	}

	results, err := s.searchRemote(ctx, query, limit)
	if err == nil && len(results) > 0 {
		cacheResults(query, limit, results)
		return results, nil
	}
	if err != nil {
		log.Printf("Geocoder unavailable, falling back to places table: %v", err)
	}

	if s.db == nil {
		if err != nil {
			return nil, err
		}
		return []Result{}, nil
	}

	return s.searchPlaces(query, limit)
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("search:%d:%s", limit, query)
}

// cachedResults checks Redis for a previous geocoder response. A miss or an
// uninitialized client is not an error, the caller just queries upstream.
func cachedResults(query string, limit int) ([]Result, bool) {
	if redis_client.GetClient() == nil {
		return nil, false
	}

	raw, err := redis_client.Get(cacheKey(query, limit))
	if err != nil {
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	return results, true
}

func cacheResults(query string, limit int, results []Result) {
	if redis_client.GetClient() == nil {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := redis_client.Set(cacheKey(query, limit), data, cacheTTL); err != nil {
		log.Printf("Failed to cache search results: %v", err)
	}
}

func (s *SearchService) searchRemote(ctx context.Context, query string, limit int) ([]Result, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {strconv.Itoa(limit)},
		// Bias results to Nigeria.
		"countrycodes": {"ng"},
	}
	apiURL := fmt.Sprintf("%s/search?%s", s.geocoderURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}

		name := r.Name
		if name == "" {
			name = r.DisplayName
		}
		results = append(results, Result{
			Name:       name,
			Address:    r.DisplayName,
			Lat:        lat,
			Lng:        lng,
			Importance: r.Importance,
		})
	}

	return results, nil
}

func (s *SearchService) searchPlaces(query string, limit int) ([]Result, error) {
	var places []model.Place

	result := s.db.
		Where("name ILIKE ?", "%"+query+"%").
		Order("population DESC").
		Limit(limit).
		Find(&places)
	if result.Error != nil {
		return nil, result.Error
	}

	results := make([]Result, len(places))
	for i, p := range places {
		results[i] = Result{
			Name:    p.Name,
			Address: fmt.Sprintf("%s, Nigeria", p.Name),
			Lat:     p.Lat,
			Lng:     p.Lng,
		}
	}
	return results, nil
}
