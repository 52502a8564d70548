package store

import (
	"testing"

	"github.com/opnlabs/gantry/pkg/config"
)

const (
	KEY1           = "pipelines/a.yml"
	KEY2           = "pipelines/b.yml"
	NONEXISTINGKEY = "12345"
)

func testDocument(t *testing.T, stage string) *config.Document {
	t.Helper()
	doc, err := config.New(map[string]any{
		"stages": []any{stage},
		"job": map[string]any{
			"stage":  stage,
			"script": "true",
		},
	})
	if err != nil {
		t.Fatal(err, "could not build test document")
	}
	return doc
}

func TestSet(t *testing.T) {
	memStore := NewMemStore()

	doc := testDocument(t, "build")
	err := memStore.Set(KEY1, doc)
	if err != nil {
		t.Error(err, "could not set key")
	}

	err = memStore.Set(KEY1, testDocument(t, "deploy"))
	if err != ErrKeyExists {
		t.Error("did not return the key exists error")
	}
}

func TestGet(t *testing.T) {
	memStore := NewMemStore()

	doc := testDocument(t, "deploy")
	err := memStore.Set(KEY2, doc)
	if err != nil {
		t.Error(err, "could not set key")
	}

	val, err := memStore.Get(KEY2)
	if err != nil {
		t.Error(err)
	}
	if val != doc {
		t.Error("retrieved document is not the stored one")
	}
}

func TestGetNonExistingKey(t *testing.T) {
	memStore := NewMemStore()

	_, err := memStore.Get(NONEXISTINGKEY)
	if err != ErrKeyDoesntExist {
		t.Error("did not return key doesn't exist error")
	}
}

func TestDelete(t *testing.T) {
	memStore := NewMemStore()

	if err := memStore.Set(KEY2, testDocument(t, "test")); err != nil {
		t.Error(err, "could not set key")
	}
	err := memStore.Delete(KEY2)
	if err != nil {
		t.Error(err)
	}
	_, err = memStore.Get(KEY2)
	if err != ErrKeyDoesntExist {
		t.Error("delete did not remove the key")
	}
}

func TestReplace(t *testing.T) {
	memStore := NewMemStore()

	first := testDocument(t, "build")
	memStore.Replace(KEY1, first)

	second := testDocument(t, "deploy")
	memStore.Replace(KEY1, second)

	val, err := memStore.Get(KEY1)
	if err != nil {
		t.Error(err)
	}
	if val != second {
		t.Error("replace did not overwrite the stored document")
	}
}
