package models

// Action is one choice offered to the player within a scene.
type Action struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Scene is the client-facing result of a turn.
type Scene struct {
	Description string   `json:"description"`
	Actions     []Action `json:"actions"`
	IsGameOver  bool     `json:"isGameOver"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// ModelScene is the literal structured output the model is instructed to
// emit. ImagePrompt is consumed internally and never forwarded to clients.
type ModelScene struct {
	Description string   `json:"description"`
	ImagePrompt string   `json:"imagePrompt"`
	Actions     []Action `json:"actions"`
	IsGameOver  bool     `json:"isGameOver"`
}

// Scene converts the model output to the client shape, without an image URL.
func (m *ModelScene) Scene() *Scene {
	return &Scene{
		Description: m.Description,
		Actions:     m.Actions,
		IsGameOver:  m.IsGameOver,
	}
}

// Stream event types emitted during a streaming turn, in order: any number
// of text events, then one scene event, then at most one image event.
const (
	EventText  = "text"
	EventScene = "scene"
	EventImage = "image"
)

// StreamEvent is one observable progress unit of a streaming turn.
type StreamEvent struct {
	Type   string `json:"type"`
	Data   string `json:"data"`
	GameID string `json:"gameId,omitempty"`
}
