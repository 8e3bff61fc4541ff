// Package repository provides database abstraction for the relocator run
// history.
package repository

import (
	"database/sql/driver"
	"time"
)

// RunRecord captures one planning (and optionally execution) attempt so
// operators can audit what relocator decided and did.
type RunRecord struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	StartedAt    time.Time  `gorm:"column:started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at"`
	Roots        JSONField  `gorm:"column:roots;type:text"`
	ScratchRoots JSONField  `gorm:"column:scratch_roots;type:text"`
	Outcome      string     `gorm:"column:outcome;type:varchar(32)"` // already_relocated | no_solution | planned (executed runs are also stored as planned)
	MoveCount    int        `gorm:"column:move_count"`
	TotalCost    uint64     `gorm:"column:total_cost"`
}

// TableName returns the table name for RunRecord.
func (RunRecord) TableName() string {
	return "run_records"
}

// JSONField is a custom type for storing a string slice as a JSON array in
// a single column, portable across sqlite/postgres/mysql.
type JSONField []byte

// Value implements driver.Valuer.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = []byte(v)
	}
	return nil
}
