package storage

import (
	"sync"

	"github.com/google/btree"

	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// entry is the btree.Item stored in MemStore's tree: ordered by the hashed
// job_id, giving deterministic iteration order over the stored dataflows.
type entry struct {
	key types.HashedJobId
	df  *types.Dataflow
}

func (e entry) Less(other btree.Item) bool {
	return e.key < other.(entry).key
}

// MemStore is the in-memory DataflowStorage backend: an ordered map over
// hashed job ids, backed by github.com/google/btree rather than a hand-rolled
// balanced tree. Used by tests and by deployments that accept losing state on
// restart in exchange for not touching disk.
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tree: btree.New(32)}
}

func (s *MemStore) Close() error { return nil }

func (s *MemStore) Save(jobID types.JobId, df *types.Dataflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.ReplaceOrInsert(entry{key: jobID.Hashed(), df: df.Clone()})
	return nil
}

func (s *MemStore) Get(jobID types.JobId) (*types.Dataflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item := s.tree.Get(entry{key: jobID.Hashed()})
	if item == nil {
		return nil, ErrNotFound()
	}
	return item.(entry).df.Clone(), nil
}

func (s *MemStore) MayExist(jobID types.JobId) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Get(entry{key: jobID.Hashed()}) != nil, nil
}

func (s *MemStore) Delete(jobID types.JobId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Delete(entry{key: jobID.Hashed()})
	return nil
}
