package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ninjamap/internal/model"
	"ninjamap/internal/polyline"
	"ninjamap/internal/routing"
	"ninjamap/internal/service/profile"
	"ninjamap/internal/service/search"
	"ninjamap/internal/service/storage"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r *gin.Engine, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func routingProvider(t *testing.T) *httptest.Server {
	t.Helper()
	shape := polyline.Encode(orb.LineString{
		{3.379206, 6.524379},
		{3.406448, 6.465422},
	}, polyline.Precision6)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"trip": map[string]any{
				"summary": map[string]any{"length": 7.2, "time": 900.0},
				"legs": []map[string]any{{
					"shape": shape,
					"maneuvers": []map[string]any{{
						"instruction":       "Head south.",
						"length":            7.2,
						"time":              900.0,
						"type":              1,
						"begin_shape_index": 0,
					}},
				}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouteHandler(t *testing.T) {
	provider := routingProvider(t)

	r := gin.New()
	SetupRouteHandlers(r.Group("/api/map"), routing.NewAssembler(routing.NewClient(provider.URL)))

	body := `{"points":[{"lat":6.524379,"lng":3.379206,"address":"Lagos Island"},
		{"lat":6.465422,"lng":3.406448,"address":"Victoria Island"}],"mode":"car"}`
	w := perform(r, http.MethodPost, "/api/map/route", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Routes []routing.RouteResult `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(resp.Routes))
	}
	if resp.Routes[0].Distance != 7200 || resp.Routes[0].Time != 900000 {
		t.Fatalf("unexpected totals: %+v", resp.Routes[0])
	}
}

func TestRouteHandlerInsufficientPoints(t *testing.T) {
	provider := routingProvider(t)

	r := gin.New()
	SetupRouteHandlers(r.Group("/api/map"), routing.NewAssembler(routing.NewClient(provider.URL)))

	body := `{"points":[{"lat":6.5,"lng":3.4,"address":"only one"}]}`
	w := perform(r, http.MethodPost, "/api/map/route", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRouteHandlerProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := gin.New()
	SetupRouteHandlers(r.Group("/api/map"), routing.NewAssembler(routing.NewClient(srv.URL)))

	body := `{"points":[{"lat":6.5,"lng":3.4},{"lat":6.4,"lng":3.5}]}`
	w := perform(r, http.MethodPost, "/api/map/route", body, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestGridHandler(t *testing.T) {
	r := gin.New()
	SetupGridHandlers(r.Group("/api/map"))

	w := perform(r, http.MethodGet,
		"/api/map/grid?minLat=6.43&maxLat=6.47&minLng=3.35&maxLng=3.43&cell=1000", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decoding feature collection: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) == 0 {
		t.Fatalf("unexpected collection: type=%q features=%d", fc.Type, len(fc.Features))
	}
	if _, ok := fc.Features[0].Properties["area"]; !ok {
		t.Fatalf("expected area property on cells")
	}
}

func TestGridHandlerRejectsEmptyBox(t *testing.T) {
	r := gin.New()
	SetupGridHandlers(r.Group("/api/map"))

	w := perform(r, http.MethodGet,
		"/api/map/grid?minLat=6.5&maxLat=6.4&minLng=3.35&maxLng=3.43", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGridHandlerRejectsOutOfRangeCoordinates(t *testing.T) {
	r := gin.New()
	SetupGridHandlers(r.Group("/api/map"))

	for _, target := range []string{
		"/api/map/grid?minLat=359&maxLat=360&minLng=3&maxLng=4",
		"/api/map/grid?minLat=-91&maxLat=6.4&minLng=3.35&maxLng=3.43",
		"/api/map/grid?minLat=6.4&maxLat=6.5&minLng=-181&maxLng=3.43",
		"/api/map/grid?minLat=6.4&maxLat=6.5&minLng=3.35&maxLng=181",
	} {
		if w := perform(r, http.MethodGet, target, "", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestGridHandlerRejectsOversizedGrid(t *testing.T) {
	r := gin.New()
	SetupGridHandlers(r.Group("/api/map"))

	w := perform(r, http.MethodGet,
		"/api/map/grid?minLat=-90&maxLat=90&minLng=-180&maxLng=180&cell=100", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for world-scale bound, got %d", w.Code)
	}
}

func TestSearchHandler(t *testing.T) {
	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"display_name": "Ikeja, Lagos, Nigeria", "name": "Ikeja", "lat": "6.6018", "lon": "3.3515"},
		})
	}))
	defer geocoder.Close()

	r := gin.New()
	SetupSearchHandlers(r.Group("/api/map"), search.NewSearchService(geocoder.URL, nil))

	w := perform(r, http.MethodGet, "/api/map/search?q=ikeja", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = perform(r, http.MethodGet, "/api/map/search", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing query, got %d", w.Code)
	}
}

func TestProfileHandlers(t *testing.T) {
	svc := profile.NewProfileService(storage.NewMemoryStorage[string, *model.Profile]())
	p := svc.Create(&model.Profile{Username: "adaeze", Email: "adaeze@example.com"})

	r := gin.New()
	SetupProfileHandlers(r.Group("/api/user"), svc)

	headers := map[string]string{"X-User-ID": p.ID}

	w := perform(r, http.MethodGet, "/api/user/profile", "", headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = perform(r, http.MethodGet, "/api/user/profile", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user header, got %d", w.Code)
	}

	update := `{"username":"adaeze","email":"adaeze@example.com","home_address":"Ikeja, Lagos"}`
	w = perform(r, http.MethodPut, "/api/user/profile", update, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	loaded, err := svc.Get(p.ID)
	if err != nil || loaded.HomeAddress != "Ikeja, Lagos" {
		t.Fatalf("profile update not applied: %+v (%v)", loaded, err)
	}

	w = perform(r, http.MethodPut, "/api/user/password", `{"password_hash":"hash-2"}`, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	loaded, _ = svc.Get(p.ID)
	if loaded.PasswordHash != "hash-2" {
		t.Fatalf("password not updated")
	}

	w = perform(r, http.MethodGet, "/api/user/profile", "",
		map[string]string{"X-User-ID": "missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}

	w = perform(r, http.MethodPut, "/api/user/profile", update,
		map[string]string{"X-User-ID": "missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating unknown user, got %d", w.Code)
	}
}

func TestStatusHandlers(t *testing.T) {
	r := gin.New()
	SetupStatusHandlers(r.Group(""), map[string]string{"port": ":8080"})

	if w := perform(r, http.MethodGet, "/status", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /status, got %d", w.Code)
	}
	if w := perform(r, http.MethodGet, "/", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /, got %d", w.Code)
	}
}
