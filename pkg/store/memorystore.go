// Package store keeps the last valid Document per source path, so a
// consumer can keep planning against a known-good definition while the
// file on disk is broken.
package store

import (
	"errors"
	"sync"

	"github.com/opnlabs/gantry/pkg/config"
)

var (
	ErrKeyExists      = errors.New("store: key already exists")
	ErrKeyDoesntExist = errors.New("store: key does not exist")
)

type Store interface {
	Set(key string, doc *config.Document) error
	Get(key string) (*config.Document, error)
	Delete(key string) error
	Replace(key string, doc *config.Document)
}

type MemStore struct {
	lock  sync.Mutex
	store map[string]*config.Document
}

func NewMemStore() *MemStore {
	return &MemStore{
		store: make(map[string]*config.Document),
	}
}

// Set stores a document under a new key.
func (m *MemStore) Set(key string, doc *config.Document) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.store[key]; ok {
		return ErrKeyExists
	}
	m.store[key] = doc
	return nil
}

// Get returns the document stored under key.
func (m *MemStore) Get(key string) (*config.Document, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	doc, ok := m.store[key]
	if !ok {
		return nil, ErrKeyDoesntExist
	}
	return doc, nil
}

// Delete removes the specified key and document.
func (m *MemStore) Delete(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.store[key]; !ok {
		return ErrKeyDoesntExist
	}
	delete(m.store, key)
	return nil
}

// Replace stores a document under key whether or not one exists. It is
// the insert-or-update used each time a file revalidates.
func (m *MemStore) Replace(key string, doc *config.Document) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.store[key] = doc
}
