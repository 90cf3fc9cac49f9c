package entity

import (
	"testing"

	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/prefabs"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type taskRecorder struct {
	tasks []ecs.Task
}

func (r *taskRecorder) RunTask(t ecs.Task) { r.tasks = append(r.tasks, t) }

type spawnRecorder struct {
	objects []Object
}

func (s *spawnRecorder) Spawn(o Object) { s.objects = append(s.objects, o) }

func loadTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	tuning, err := prefabs.LoadTuning(prefabs.DefaultTuning)
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	return tuning
}
