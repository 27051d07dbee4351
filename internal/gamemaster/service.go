package gamemaster

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"adventurego/internal/models"
)

// ChatClient is the language-model boundary: either a complete reply or a
// stream of fragments that concatenate to it. Fragment boundaries are
// arbitrary and may split mid-word or mid-escape.
type ChatClient interface {
	Complete(ctx context.Context, history []*models.Message) (string, error)
	Stream(ctx context.Context, history []*models.Message, onDelta func(string) error) error
}

// ImageClient turns a visual prompt into an image URL.
type ImageClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service drives game turns against the model and image backends. All
// conversation state lives in the injected SessionStore.
type Service struct {
	chat   ChatClient
	images ImageClient
	store  SessionStore
}

func NewService(chat ChatClient, images ImageClient, store SessionStore) *Service {
	return &Service{chat: chat, images: images, store: store}
}

// StartGame seeds a fresh session and runs the first turn synchronously.
func (s *Service) StartGame(ctx context.Context, theme string) (string, *models.Scene, error) {
	gameID, history := s.PrepareStart(theme)
	scene, err := s.runTurn(ctx, gameID, history)
	if err != nil {
		return "", nil, err
	}
	return gameID, scene, nil
}

// ChooseAction advances an existing game synchronously.
func (s *Service) ChooseAction(ctx context.Context, gameID string, actionID int) (*models.Scene, error) {
	history, err := s.PrepareAction(gameID, actionID)
	if err != nil {
		return nil, err
	}
	return s.runTurn(ctx, gameID, history)
}

// PrepareStart creates the session for a new game and returns its id along
// with the seeded history, ready for a turn.
func (s *Service) PrepareStart(theme string) (string, []*models.Message) {
	history := []*models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: startMessage(theme)},
	}
	gameID := s.store.Create(history)
	return gameID, history
}

// PrepareAction resolves the chosen action's label from the last assistant
// turn and appends the player's message. A missing or malformed prior turn
// falls back to a generic label so the game can always continue.
func (s *Service) PrepareAction(gameID string, actionID int) ([]*models.Message, error) {
	history, err := s.store.Get(gameID)
	if err != nil {
		return nil, err
	}

	choice := fmt.Sprintf("I choose action %d", actionID)
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != models.RoleAssistant {
			continue
		}
		if scene, err := decodeModelScene(history[i].Content); err == nil {
			for _, action := range scene.Actions {
				if action.ID == actionID {
					choice = "I choose: " + action.Text
					break
				}
			}
		}
		break
	}

	if err := s.store.Append(gameID, &models.Message{Role: models.RoleUser, Content: choice}); err != nil {
		return nil, err
	}
	return s.store.Get(gameID)
}

// StreamScene runs one streaming turn: description text is emitted
// incrementally while the model reply arrives, then the finished scene, then
// a best-effort image. The assistant message is stored only once the model
// stream has fully ended, so a cancelled turn never poisons the history.
func (s *Service) StreamScene(ctx context.Context, gameID string, history []*models.Message, emit func(models.StreamEvent) error) error {
	var buf strings.Builder
	emitted := 0

	err := s.chat.Stream(ctx, history, func(delta string) error {
		buf.WriteString(delta)
		desc, ok := extractPartialField(buf.String(), "description")
		if !ok || len(desc) <= emitted {
			return nil
		}
		// Only the new suffix goes out; earlier text is never re-emitted.
		event := models.StreamEvent{Type: models.EventText, Data: desc[emitted:], GameID: gameID}
		emitted = len(desc)
		return emit(event)
	})
	if err != nil {
		return err
	}

	raw := stripFences(buf.String())
	if err := s.store.Append(gameID, &models.Message{Role: models.RoleAssistant, Content: raw}); err != nil {
		return err
	}

	modelScene, err := decodeModelScene(raw)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(modelScene.Scene())
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := emit(models.StreamEvent{Type: models.EventScene, Data: string(payload), GameID: gameID}); err != nil {
		return err
	}

	if prompt := strings.TrimSpace(modelScene.ImagePrompt); prompt != "" {
		url, err := s.images.Generate(ctx, prompt)
		if err != nil {
			log.Printf("generate image for game %s: %v", gameID, err)
			return nil
		}
		return emit(models.StreamEvent{Type: models.EventImage, Data: url, GameID: gameID})
	}
	return nil
}

// runTurn is the non-streaming turn: full model reply, then the image is
// fetched before the composed scene is returned. Image failure is swallowed,
// the scene simply ships without an imageUrl.
func (s *Service) runTurn(ctx context.Context, gameID string, history []*models.Message) (*models.Scene, error) {
	reply, err := s.chat.Complete(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("model reply: %w", err)
	}

	raw := stripFences(reply)
	if err := s.store.Append(gameID, &models.Message{Role: models.RoleAssistant, Content: raw}); err != nil {
		return nil, err
	}

	modelScene, err := decodeModelScene(raw)
	if err != nil {
		return nil, err
	}

	scene := modelScene.Scene()
	if prompt := strings.TrimSpace(modelScene.ImagePrompt); prompt != "" {
		url, err := s.images.Generate(ctx, prompt)
		if err != nil {
			log.Printf("generate image for game %s: %v", gameID, err)
		} else {
			scene.ImageURL = url
		}
	}
	return scene, nil
}
