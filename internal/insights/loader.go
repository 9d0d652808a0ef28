package insights

import (
	"log"

	"titanic/adapters/excel"
)

// Load returns aggregates recomputed from path, or the built-in ones when path is empty
// or the dataset cannot be used.
func Load(path string) Aggregates {
	if path == "" {
		return Default()
	}

	data, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		log.Printf("[Insights] Warning: failed to read %s, using built-in aggregates: %v", path, err)
		return Default()
	}

	agg, err := FromData(data)
	if err != nil {
		log.Printf("[Insights] Warning: failed to aggregate %s, using built-in aggregates: %v", path, err)
		return Default()
	}

	log.Printf("[Insights] Aggregates recomputed from %s", agg.Source)
	return agg
}
