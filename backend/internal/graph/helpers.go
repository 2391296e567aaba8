package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}

func getTimeFromRecord(record *neo4j.Record, key string) (time.Time, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}, false
	}
	// Neo4j date/datetime values come back as time.Time
	if t, ok := val.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

func getStringSliceFromRecord(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []string{}
	}
	if slice, ok := val.([]interface{}); ok {
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}

func getIntSliceFromRecord(record *neo4j.Record, key string) []int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []int{}
	}
	if slice, ok := val.([]interface{}); ok {
		result := make([]int, 0, len(slice))
		for _, v := range slice {
			if i, ok := v.(int64); ok {
				result = append(result, int(i))
			}
		}
		return result
	}
	return []int{}
}

func researcherFromRecord(record *neo4j.Record) Researcher {
	return Researcher{
		ID:         getStringFromRecord(record, "id"),
		Name:       getStringFromRecord(record, "name"),
		Department: getStringFromRecord(record, "department"),
		Interests:  getStringSliceFromRecord(record, "interests"),
		Status:     getStringFromRecord(record, "status"),
	}
}
