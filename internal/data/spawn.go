package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AsteroidSpawn places one asteroid of Blocks cells with its origin at X, Y.
type AsteroidSpawn struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Blocks int     `yaml:"blocks"`
}

// EnemySpawn places one enemy. Health 0 takes the configured default.
type EnemySpawn struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Health float64 `yaml:"health"`
}

// SpawnList is the initial world layout.
type SpawnList struct {
	Asteroids []AsteroidSpawn `yaml:"asteroids"`
	Enemies   []EnemySpawn    `yaml:"enemies"`
}

// LoadSpawnList loads spawn_list.yaml.
func LoadSpawnList(path string) (*SpawnList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	var l SpawnList
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	for i, a := range l.Asteroids {
		if a.Blocks < 1 {
			return nil, fmt.Errorf("spawn list asteroid %d: blocks must be at least 1, got %d", i, a.Blocks)
		}
	}
	for i, e := range l.Enemies {
		if e.Health < 0 {
			return nil, fmt.Errorf("spawn list enemy %d: negative health", i)
		}
	}
	return &l, nil
}

// DefaultSpawnList is the layout of the original demo scene: one 60-block
// asteroid and one enemy.
func DefaultSpawnList() *SpawnList {
	return &SpawnList{
		Asteroids: []AsteroidSpawn{{X: -300, Y: 200, Blocks: 60}},
		Enemies:   []EnemySpawn{{X: 300, Y: 200}},
	}
}
