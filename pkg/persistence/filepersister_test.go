package persistence_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/persistence"
)

func TestFilePersisterFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent-runs.json")
	persister := persistence.NewFilePersister(path)

	before := time.Now().Unix()
	cps, err := persister.Checkpoints()
	if err != nil {
		t.Fatalf("Should not have failed on first load: err: %v", err)
	}
	after := time.Now().Unix()

	for _, category := range model.Categories() {
		if cps[category] < before || cps[category] > after {
			t.Errorf("First load should default %v to now but it is %v", category, cps[category])
		}
	}

	// The file should now exist so a fresh deployment never floods
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Checkpoint file should have been created: err: %v", err)
	}
}

func TestFilePersisterRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent-runs.json")
	persister := persistence.NewFilePersister(path)

	cps := model.Checkpoints{
		model.CategoryPayment:       1005,
		model.CategoryProjectCreate: 2000,
	}
	err := persister.SaveCheckpoints(cps)
	if err != nil {
		t.Fatalf("Should not have failed saving checkpoints: err: %v", err)
	}

	loaded, err := persister.Checkpoints()
	if err != nil {
		t.Fatalf("Should not have failed loading checkpoints: err: %v", err)
	}
	if loaded[model.CategoryPayment] != 1005 {
		t.Errorf("Payment checkpoint should be 1005 but it is %v", loaded[model.CategoryPayment])
	}
	if loaded[model.CategoryProjectCreate] != 2000 {
		t.Errorf("Project create checkpoint should be 2000 but it is %v",
			loaded[model.CategoryProjectCreate])
	}
}

func TestFilePersisterOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent-runs.json")
	persister := persistence.NewFilePersister(path)

	err := persister.SaveCheckpoints(model.NewCheckpoints(1000))
	if err != nil {
		t.Fatalf("Should not have failed saving checkpoints: err: %v", err)
	}
	err = persister.SaveCheckpoints(model.NewCheckpoints(3000))
	if err != nil {
		t.Fatalf("Should not have failed saving checkpoints: err: %v", err)
	}

	loaded, err := persister.Checkpoints()
	if err != nil {
		t.Fatalf("Should not have failed loading checkpoints: err: %v", err)
	}
	for _, category := range model.Categories() {
		if loaded[category] != 3000 {
			t.Errorf("Save should fully overwrite, %v is %v", category, loaded[category])
		}
	}
}

func TestFilePersisterFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent-runs.json")
	persister := persistence.NewFilePersister(path)

	err := persister.SaveCheckpoints(model.Checkpoints{
		model.CategoryPayment:       1,
		model.CategoryProjectCreate: 2,
	})
	if err != nil {
		t.Fatalf("Should not have failed saving checkpoints: err: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Should not have failed reading the file: err: %v", err)
	}
	shape := map[string]int64{}
	err = json.Unmarshal(data, &shape)
	if err != nil {
		t.Fatalf("Checkpoint file should be JSON: err: %v", err)
	}
	if shape["lastPayEventTime"] != 1 {
		t.Errorf("lastPayEventTime should be 1 but it is %v", shape["lastPayEventTime"])
	}
	if shape["lastProjectCreateEventTime"] != 2 {
		t.Errorf("lastProjectCreateEventTime should be 2 but it is %v",
			shape["lastProjectCreateEventTime"])
	}
}

func TestFilePersisterBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent-runs.json")
	err := os.WriteFile(path, []byte("not json"), 0644)
	if err != nil {
		t.Fatalf("Error writing test file: %v", err)
	}

	persister := persistence.NewFilePersister(path)
	_, err = persister.Checkpoints()
	if err == nil {
		t.Errorf("Should have failed on an unparseable checkpoint file")
	}
}
