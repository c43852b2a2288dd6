package storage

import (
	"fmt"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// DataflowStorage is the interface satisfied by both storage backends: save,
// fetch, existence-check and delete a dataflow by job_id.
type DataflowStorage interface {
	Save(jobID types.JobId, df *types.Dataflow) error
	Get(jobID types.JobId) (*types.Dataflow, error)
	MayExist(jobID types.JobId) (bool, error)
	Delete(jobID types.JobId) error
	Close() error
}

// PersistConfig selects the bbolt-backed, on-disk DataflowStorage.
type PersistConfig struct {
	Path string `yaml:"path"`
}

// Config is a closed set of variants, {Persist, Memory}, dispatched by New
// into the matching backend.
type Config struct {
	Persist *PersistConfig `yaml:"persist,omitempty"`
	Memory  *struct{}      `yaml:"memory,omitempty"`
}

// New dispatches cfg to the matching DataflowStorage backend.
func New(cfg Config) (DataflowStorage, error) {
	switch {
	case cfg.Persist != nil:
		return NewBoltStore(cfg.Persist.Path)
	case cfg.Memory != nil:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("storage: exactly one of persist or memory must be set")
	}
}

var errNotFound = errs.New(errs.StorageGetFailed, "dataflow not found")

// ErrNotFound is returned by Get when no dataflow is stored under job_id.
func ErrNotFound() error { return errNotFound }
