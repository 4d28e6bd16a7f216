package models

import (
	"fmt"
	"time"
)

// ClassLevel is one of the three fixed academic levels of a program.
type ClassLevel int

const (
	LevelOne   ClassLevel = 1
	LevelTwo   ClassLevel = 2
	LevelThree ClassLevel = 3
)

// ClassLevels lists every level in ascending order.
var ClassLevels = []ClassLevel{LevelOne, LevelTwo, LevelThree}

// Valid reports whether the level is one of the supported levels.
func (l ClassLevel) Valid() bool {
	return l >= LevelOne && l <= LevelThree
}

// Label returns the human readable level name.
func (l ClassLevel) Label() string {
	return fmt.Sprintf("Licence %d", int(l))
}

// Program groups classes of the same track (filière).
type Program struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProgramDetail embeds the classes of a program.
type ProgramDetail struct {
	Program
	Classes []Class `json:"classes"`
}
