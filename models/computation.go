package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"groupstat/domain/grouped"

	"github.com/google/uuid"
)

// DatasetJSON stores a grouped dataset in a PostgreSQL JSONB column
type DatasetJSON grouped.Dataset

// Value implements driver.Valuer interface
func (d DatasetJSON) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(grouped.Dataset(d))
}

// Scan implements sql.Scanner interface
func (d *DatasetJSON) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*d = DatasetJSON{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DatasetJSON", value)
	}

	if len(bytes) == 0 {
		*d = DatasetJSON{}
		return nil
	}

	var rows grouped.Dataset
	if err := json.Unmarshal(bytes, &rows); err != nil {
		return err
	}
	*d = DatasetJSON(rows)
	return nil
}

// Computation is one persisted run of the grouped statistics engine
type Computation struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Source         string      `json:"source" db:"source"`
	Dataset        DatasetJSON `json:"dataset" db:"dataset"`
	TotalFrequency float64     `json:"total_frequency" db:"total_frequency"`
	Mean           float64     `json:"mean" db:"mean"`
	Median         float64     `json:"median" db:"median"`
	Mode           float64     `json:"mode" db:"mode"`
	Variance       float64     `json:"variance" db:"variance"`
	StdDev         float64     `json:"std_dev" db:"std_dev"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// NewComputation records a result under a fresh id
func NewComputation(source string, result *grouped.StatsResult) *Computation {
	return &Computation{
		ID:             uuid.New(),
		Source:         source,
		Dataset:        DatasetJSON(result.Dataset),
		TotalFrequency: result.TotalFrequency,
		Mean:           result.Mean,
		Median:         result.Median,
		Mode:           result.Mode,
		Variance:       result.Variance,
		StdDev:         result.StdDev,
		CreatedAt:      time.Now().UTC(),
	}
}

// Result rebuilds the engine result this computation was recorded from
func (c *Computation) Result() *grouped.StatsResult {
	return &grouped.StatsResult{
		Dataset:        grouped.Dataset(c.Dataset).Clone(),
		TotalFrequency: c.TotalFrequency,
		Mean:           c.Mean,
		Median:         c.Median,
		Mode:           c.Mode,
		Variance:       c.Variance,
		StdDev:         c.StdDev,
	}
}
