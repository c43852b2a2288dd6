/*
Package storage implements the Dataflow Storage component: a small
key-value abstraction over job_id -> Dataflow, with two backends selected
at construction time.

# Architecture

	┌──────────────────── DATAFLOW STORAGE ────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │         DataflowStorage (interface)          │          │
	│  │  Save / Get / MayExist / Delete              │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│         ┌───────────┴────────────┐                        │
	│         │                        │                        │
	│  ┌──────▼──────┐         ┌───────▼───────┐               │
	│  │  BoltStore   │         │   MemStore    │               │
	│  │  go.etcd.io  │         │ google/btree  │               │
	│  │  /bbolt      │         │ ordered map   │               │
	│  │  (Persist)   │         │  (Memory)     │               │
	│  └──────────────┘         └───────────────┘               │
	└────────────────────────────────────────────────────────────┘

BoltStore persists one bucket, "dataflow", keyed by the canonical encoding
of types.JobId and valued by the canonical encoding of types.Dataflow — the
same ACID, single-writer, mmap'd B+tree model bbolt gives any embedded Go
process. MemStore keeps an ordered in-memory map keyed by the stable hash
of the job_id, backed by github.com/google/btree instead of a hand-rolled
tree.

# Usage

	store, err := storage.New(storage.Config{Persist: &storage.PersistConfig{Path: dataDir}})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	err = store.Save(jobID, dataflow)
	df, err := store.Get(jobID)
	ok, err := store.MayExist(jobID)
	err = store.Delete(jobID)
*/
package storage
