package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneRemovesEmpties(t *testing.T) {
	in := Object{
		"name":  String("x"),
		"notes": String(""),
		"tags":  Array{},
		"extra": Object{"inner": Null{}},
		"gone":  Null{},
		"zero":  Int(0),
		"off":   Bool(false),
	}

	got := Prune(in, PruneRules{})
	assert.Equal(t, Object{"name": String("x"), "zero": Int(0), "off": Bool(false)}, got)
}

func TestPruneMetadataKeys(t *testing.T) {
	in := Object{
		"id":          String("abc"),
		"source_text": String("raw"),
		"name":        String("x"),
		"child": Object{
			"id":          String("kept"),
			"source_text": String("dropped"),
		},
	}

	got := Prune(in, PruneRules{RootKeys: []string{"id"}, DeepKeys: []string{"source_text"}})
	assert.Equal(t, Object{"name": String("x"), "child": Object{"id": String("kept")}}, got)
}

func TestPruneRequiredSurvives(t *testing.T) {
	in := Object{
		"description": String(""),
		"level":       Int(0),
		"terms":       Array{},
	}
	rules := PruneRules{
		Required: []Field{{Path: "", Key: "description"}, {Path: "", Key: "terms"}},
		Defaults: []DefaultRule{{Path: "", Key: "level", Value: Int(0)}},
	}

	got := Prune(in, rules)
	assert.Equal(t, Object{"description": String(""), "terms": Array{}}, got)
}

func TestPruneDefaultsBySuffix(t *testing.T) {
	in := Object{
		"damage": Object{
			"parts": Array{
				Object{"id": String("a"), "application": Object{"scope": String("per_target"), "ticks": Int(1)}},
				Object{"id": String("b"), "application": Object{"scope": String("per_target"), "ticks": Int(3)}},
			},
		},
	}
	rules := PruneRules{
		Required: []Field{{Path: "application", Key: "scope"}},
		Defaults: []DefaultRule{{Path: "parts[].application", Key: "ticks", Value: Int(1)}},
	}

	got := Prune(in, rules)
	assert.Equal(t, Object{
		"damage": Object{
			"parts": Array{
				Object{"id": String("a"), "application": Object{"scope": String("per_target")}},
				Object{"id": String("b"), "application": Object{"scope": String("per_target"), "ticks": Int(3)}},
			},
		},
	}, got)
}

func TestPruneConditionalDefault(t *testing.T) {
	perLevel := func(o Object) bool { return Equal(o["mode"], String("per_level")) }
	rules := PruneRules{
		Defaults: []DefaultRule{{Path: "distance", Key: "value", Value: Int(0), When: perLevel}},
	}

	got := Prune(Object{"distance": Object{"mode": String("per_level"), "value": Int(0), "per_level": Int(10)}}, rules)
	assert.Equal(t, Object{"distance": Object{"mode": String("per_level"), "per_level": Int(10)}}, got)

	got = Prune(Object{"distance": Object{"mode": String("fixed"), "value": Int(0)}}, rules)
	assert.Equal(t, Object{"distance": Object{"mode": String("fixed"), "value": Int(0)}}, got)
}

func TestPruneObjectDefault(t *testing.T) {
	rules := PruneRules{
		Defaults: []DefaultRule{{Path: "saving_throw", Key: "notes", Value: String("none")}},
		Objects:  []ObjectDefault{{Path: "saving_throw", Value: Object{"kind": String("none")}}},
	}

	got := Prune(Object{"name": String("x"), "saving_throw": Object{"kind": String("none"), "notes": String("none")}}, rules)
	assert.Equal(t, Object{"name": String("x")}, got)

	got = Prune(Object{"saving_throw": Object{"kind": String("single")}}, rules)
	assert.Equal(t, Object{"saving_throw": Object{"kind": String("single")}}, got)
}

func TestPruneKeepsArrayElements(t *testing.T) {
	got := Prune(Object{"list": Array{String(""), Object{}, Int(1)}}, PruneRules{})
	assert.Equal(t, Object{"list": Array{String(""), Object{}, Int(1)}}, got)
}
