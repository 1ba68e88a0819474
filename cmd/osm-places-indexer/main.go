// Command osm-places-indexer loads named settlements from an OSM PBF
// extract (e.g. nigeria-latest.osm.pbf) into the places table that backs
// the offline search fallback.
package main

import (
	"io"
	"log"
	"os"
	"runtime"
	"strconv"

	"ninjamap/internal/config"
	"ninjamap/internal/model"
	"ninjamap/internal/postgres"

	"github.com/qedus/osmpbf"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: osm-places-indexer <path-to-osm.pbf>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db := postgres.Init(cfg.DBUrl)

	osmFile := os.Args[1]
	log.Printf("Processing file: %s", osmFile)

	f, err := os.Open(osmFile)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()

	decoder := osmpbf.NewDecoder(f)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	numProcs := runtime.GOMAXPROCS(-1)
	if err := decoder.Start(numProcs); err != nil {
		log.Fatalf("Failed to start decoder: %v", err)
	}
	log.Printf("Decoder started with %d processors", numProcs)

	var batch []model.Place
	total := 0

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error decoding: %v", err)
		}

		node, ok := object.(*osmpbf.Node)
		if !ok {
			continue
		}

		placeType, isPlace := node.Tags["place"]
		if !isPlace || !isSettlementType(placeType) {
			continue
		}

		name := node.Tags["name"]
		if name == "" {
			continue
		}

		population := 0
		if popStr, ok := node.Tags["population"]; ok {
			if pop, err := strconv.Atoi(popStr); err == nil {
				population = pop
			}
		}

		batch = append(batch, model.Place{
			ID:         node.ID,
			Name:       name,
			Type:       placeType,
			Lat:        node.Lat,
			Lng:        node.Lon,
			Population: population,
		})

		if len(batch) >= insertBatchSize {
			total += flush(db, batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		total += flush(db, batch)
	}

	log.Printf("Imported %d places", total)
}

func flush(db *gorm.DB, batch []model.Place) int {
	result := db.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(batch, insertBatchSize)
	if result.Error != nil {
		log.Fatalf("Failed to insert places: %v", result.Error)
	}
	return len(batch)
}

// isSettlementType filters for the place types worth indexing.
func isSettlementType(placeType string) bool {
	switch placeType {
	case "city", "town", "village", "hamlet", "suburb":
		return true
	default:
		return false
	}
}
