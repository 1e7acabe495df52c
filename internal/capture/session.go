// Package capture implements the two-step capture workflow that produces
// one Memory: upload (select + normalize) then edit (annotate + save).
package capture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"memorateller-backend/internal/domain"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/service/memory"
	appErrors "memorateller-backend/pkg/errors"
)

// State is the lifecycle state of a capture session.
type State string

const (
	// StateAwaitingUpload is the initial state: no image attached yet.
	StateAwaitingUpload State = "awaiting_upload"
	// StateEditing means a normalized image exists and the user is
	// annotating it.
	StateEditing State = "editing"
	// StateSaved is terminal: exactly one Memory record exists.
	StateSaved State = "saved"
)

// Session is one capture flow for one identity. All transitions are
// serialized; a save in flight blocks duplicate submissions.
type Session struct {
	mu sync.Mutex

	id      string
	ownerID string
	state   State

	img      *image.Normalized
	filename string
	title    string
	story    string

	saving      bool
	saved       *domain.Memory
	saveTimeout time.Duration

	touchedAt time.Time
}

func newSession(ownerID string, saveTimeout time.Duration) *Session {
	return &Session{
		id:          uuid.New().String(),
		ownerID:     ownerID,
		state:       StateAwaitingUpload,
		saveTimeout: saveTimeout,
		touchedAt:   time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// OwnerID returns the identity the session was created for.
func (s *Session) OwnerID() string { return s.ownerID }

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the current title and story.
func (s *Session) Draft() (title, story string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, s.story
}

// AttachImage normalizes raw and advances the session to Editing. On
// normalization failure the session stays in AwaitingUpload and the
// previously selected file reference is cleared; no partial state ever
// reaches Editing.
func (s *Session) AttachImage(n *image.Normalizer, raw []byte, filename string) (*image.Normalized, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.state == StateSaved {
		return nil, appErrors.NewConflict("capture already saved")
	}
	if s.saving {
		return nil, appErrors.NewConflict("save in progress")
	}

	img, err := n.Normalize(raw)
	if err != nil {
		s.img = nil
		s.filename = ""
		s.state = StateAwaitingUpload
		return nil, err
	}

	s.img = img
	s.filename = filename
	s.state = StateEditing
	return img, nil
}

// SetDraft updates the title and story. Drafts are mutable only before
// persistence.
func (s *Session) SetDraft(title, story string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	if s.state == StateSaved {
		return appErrors.NewConflict("capture already saved")
	}
	s.title = title
	s.story = story
	return nil
}

// Save persists the capture through the memory service. The precondition
// (image attached, title and story non-empty, identity present) is
// checked by the service before any collaborator call, so a failed gate
// has no side effects. On failure the session stays in Editing with the
// draft intact; retry is caller-initiated. A second save after success
// returns the already-created Memory without writing a second record.
func (s *Session) Save(ctx context.Context, svc memory.Service) (*domain.Memory, error) {
	s.mu.Lock()
	s.touchedAt = time.Now()

	if s.saved != nil {
		saved := s.saved
		s.mu.Unlock()
		return saved, nil
	}
	if s.saving {
		s.mu.Unlock()
		return nil, appErrors.NewConflict("save already in progress")
	}
	if s.state != StateEditing || s.img == nil {
		s.mu.Unlock()
		return nil, appErrors.NewValidation("no image attached yet")
	}

	owner, img, filename := s.ownerID, s.img, s.filename
	title, story := s.title, s.story
	s.saving = true
	s.mu.Unlock()

	// Bound the upload+write sequence so a hung save cannot pin the
	// session's in-flight flag forever.
	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.saveTimeout)
		defer cancel()
	}

	mem, err := svc.SaveMemory(ctx, owner, img, filename, title, story)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return nil, err
	}
	s.saved = mem
	s.state = StateSaved
	return mem, nil
}
