// Package persistence contains components to persist the heartbeat checkpoints
package persistence // import "github.com/juicetools/juicebox-heartbeat/pkg/persistence"

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
	"github.com/juicetools/juicebox-heartbeat/pkg/utils"
)

// checkpointsFile is the on-disk shape of the checkpoint state. The key
// names match the recent-runs.json file written by earlier deployments.
type checkpointsFile struct {
	LastPayEventTime           int64 `json:"lastPayEventTime"`
	LastProjectCreateEventTime int64 `json:"lastProjectCreateEventTime"`
}

// NewFilePersister creates a persister backed by a local JSON file
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// FilePersister stores the checkpoints in a local JSON file
type FilePersister struct {
	path string
}

// Checkpoints returns the persisted checkpoints. On the first ever load
// the file is created with every category set to now, so a fresh
// deployment announces nothing retroactively.
func (p *FilePersister) Checkpoints() (model.Checkpoints, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		cps := model.NewCheckpoints(utils.CurrentEpochSecsInInt64())
		err = p.SaveCheckpoints(cps)
		if err != nil {
			return nil, err
		}
		return cps, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading checkpoint file %v", p.path)
	}

	cpsFile := &checkpointsFile{}
	err = json.Unmarshal(data, cpsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing checkpoint file %v", p.path)
	}
	return model.Checkpoints{
		model.CategoryPayment:       cpsFile.LastPayEventTime,
		model.CategoryProjectCreate: cpsFile.LastProjectCreateEventTime,
	}, nil
}

// SaveCheckpoints fully overwrites the checkpoint file with cps
func (p *FilePersister) SaveCheckpoints(cps model.Checkpoints) error {
	cpsFile := &checkpointsFile{
		LastPayEventTime:           cps[model.CategoryPayment],
		LastProjectCreateEventTime: cps[model.CategoryProjectCreate],
	}
	data, err := json.Marshal(cpsFile)
	if err != nil {
		return errors.Wrap(err, "Error marshalling checkpoints")
	}
	err = os.WriteFile(p.path, data, 0644)
	if err != nil {
		return errors.Wrapf(err, "Error writing checkpoint file %v", p.path)
	}
	return nil
}
