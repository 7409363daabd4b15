package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyRecord = `{"id":"old-2","priority":"2","image":"/uploads/x.png","extra":{"k":1},"title":{"en":"T"}}`

func TestProject_LegacyRecordIsReadLoosely(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(legacyRecord), &p))

	assert.Equal(t, "old-2", p.ID)
	assert.Equal(t, 2, p.Priority)
	assert.Equal(t, "T", p.Title.EN)
	assert.Nil(t, p.GalleryImages)
	assert.Equal(t, "/uploads/x.png", p.Extra("image").String())
	assert.Equal(t, int64(1), p.Extra("extra").Get("k").Int())
}

func TestProject_NumericIDAndPriority(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id": 12, "priority": 3, "featured": "true"}`), &p))

	assert.Equal(t, "12", p.ID)
	assert.Equal(t, 3, p.Priority)
	assert.True(t, p.Featured)
}

func TestProject_UnchangedRecordIsWrittenVerbatim(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(legacyRecord), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, legacyRecord, string(out))
}

func TestProject_ChangedFieldIsPatched(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(legacyRecord), &p))

	p.Published = true

	out, err := json.Marshal(p)
	require.NoError(t, err)

	doc := string(out)
	assert.JSONEq(t, `{"id":"old-2","priority":"2","image":"/uploads/x.png","extra":{"k":1},"title":{"en":"T"},"published":true}`, doc)
	assert.Less(t, strings.Index(doc, `"extra"`), strings.Index(doc, `"published"`))
	assert.NotContains(t, doc, "gallery_images")
	assert.NotContains(t, doc, "null")
}

func TestProject_PriorityChangeReplacesStringValue(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(legacyRecord), &p))

	p.Priority = 5

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"priority":5`)
	assert.Contains(t, string(out), `"image":"/uploads/x.png"`)
}

func TestProject_NewRecord(t *testing.T) {
	out, err := json.Marshal(Project{ID: "new", Title: LocalizedText{EN: "Water"}})
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `{"id":"new","title":{"en":"Water"`), doc)
	assert.Contains(t, doc, `"gallery_images":[]`)
	assert.Contains(t, doc, `"tags":[]`)
	assert.NotContains(t, doc, "longDescription")
}

func TestProject_LongDescriptionRemoved(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","longDescription":{"en":"x"}}`), &p))
	require.NotNil(t, p.LongDescription)

	p.LongDescription = nil

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`, string(out))
}

func TestProject_RejectsNonObject(t *testing.T) {
	var projects []Project
	assert.Error(t, json.Unmarshal([]byte(`["just a string"]`), &projects))
}
