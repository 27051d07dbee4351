package gamemaster

import (
	"errors"
	"reflect"
	"testing"
)

const sampleSceneJSON = `{
  "description": "A dark cave.",
  "imagePrompt": "a torch-lit cave",
  "actions": [
    { "id": 1, "text": "Enter the cave" },
    { "id": 2, "text": "Walk away" },
    { "id": 3, "text": "Shout into the dark" },
    { "id": 4, "text": "Light a torch" }
  ],
  "isGameOver": false
}`

func TestDecodeModelScenePlain(t *testing.T) {
	scene, err := decodeModelScene(sampleSceneJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scene.Description != "A dark cave." {
		t.Fatalf("description %q", scene.Description)
	}
	if scene.ImagePrompt != "a torch-lit cave" {
		t.Fatalf("imagePrompt %q", scene.ImagePrompt)
	}
	if len(scene.Actions) != 4 || scene.Actions[3].ID != 4 {
		t.Fatalf("actions %#v", scene.Actions)
	}
	if scene.IsGameOver {
		t.Fatalf("isGameOver should default false")
	}
}

func TestDecodeModelSceneFencedRoundTrip(t *testing.T) {
	plain, err := decodeModelScene(sampleSceneJSON)
	if err != nil {
		t.Fatalf("decode plain: %v", err)
	}
	fenced, err := decodeModelScene("```json\n" + sampleSceneJSON + "\n```")
	if err != nil {
		t.Fatalf("decode fenced: %v", err)
	}
	if !reflect.DeepEqual(plain, fenced) {
		t.Fatalf("fenced decode differs: %#v vs %#v", plain, fenced)
	}

	noTag, err := decodeModelScene("```\n" + sampleSceneJSON + "\n```")
	if err != nil {
		t.Fatalf("decode fence without tag: %v", err)
	}
	if !reflect.DeepEqual(plain, noTag) {
		t.Fatalf("untagged fence decode differs")
	}
}

func TestDecodeModelSceneCaseInsensitiveFields(t *testing.T) {
	scene, err := decodeModelScene(`{"Description": "A cave.", "Actions": [{"Id": 1, "Text": "Go"}]}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scene.Description != "A cave." || scene.Actions[0].Text != "Go" {
		t.Fatalf("unexpected scene %#v", scene)
	}
}

func TestDecodeModelSceneFailures(t *testing.T) {
	cases := map[string]string{
		"not json":            `once upon a time`,
		"missing actions":     `{"description": "A cave."}`,
		"missing description": `{"actions": [{"id": 1, "text": "Go"}]}`,
		"non-numeric id":      `{"description": "A cave.", "actions": [{"id": "one", "text": "Go"}]}`,
		"empty input":         ``,
	}
	for name, raw := range cases {
		if _, err := decodeModelScene(raw); !errors.Is(err, ErrDecode) {
			t.Errorf("%s: want ErrDecode, got %v", name, err)
		}
	}
}

func TestStripFences(t *testing.T) {
	if got := stripFences("  " + sampleSceneJSON + "\n"); got != sampleSceneJSON {
		t.Fatalf("unfenced input should only be trimmed, got %q", got)
	}
	if got := stripFences("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Fatalf("fence strip got %q", got)
	}
	if got := stripFences("```\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Fatalf("untagged fence strip got %q", got)
	}
}
