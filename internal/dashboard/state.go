package dashboard

import (
	"errors"
	"fmt"

	"shopadmin/internal/media"
	"shopadmin/internal/models"

	"github.com/google/uuid"
)

// MaxImages is the number of images the product form accepts at once.
const MaxImages = 4

var (
	// ErrTooManyImages is returned when staging would exceed MaxImages.
	ErrTooManyImages = fmt.Errorf("a product takes at most %d images", MaxImages)
	// ErrInvalidTransition is returned for a modal transition its state
	// does not allow.
	ErrInvalidTransition = errors.New("invalid modal transition")
)

// StagedImage is a file picked in the form together with the identifier
// of its preview.
type StagedImage struct {
	PreviewID string
	File      media.File
}

// ImageSelection holds the images picked in the product form before
// submission.
type ImageSelection struct {
	staged  []StagedImage
	revoked []string
}

// Stage adds files to the selection. A batch that would take the selection
// past MaxImages is rejected as a whole and the selection is left as it was.
func (s *ImageSelection) Stage(files ...media.File) error {
	if len(s.staged)+len(files) > MaxImages {
		return ErrTooManyImages
	}
	for _, f := range files {
		s.staged = append(s.staged, StagedImage{PreviewID: uuid.NewString(), File: f})
	}
	return nil
}

// Remove drops the image at index i and revokes its preview.
func (s *ImageSelection) Remove(i int) error {
	if i < 0 || i >= len(s.staged) {
		return fmt.Errorf("no staged image at index %d", i)
	}
	s.revoked = append(s.revoked, s.staged[i].PreviewID)
	s.staged = append(s.staged[:i], s.staged[i+1:]...)
	return nil
}

// Reset empties the selection, revoking every preview.
func (s *ImageSelection) Reset() {
	for _, img := range s.staged {
		s.revoked = append(s.revoked, img.PreviewID)
	}
	s.staged = nil
}

func (s *ImageSelection) Len() int {
	return len(s.staged)
}

// Staged returns the staged images in the order they were picked.
func (s *ImageSelection) Staged() []StagedImage {
	return append([]StagedImage(nil), s.staged...)
}

// Files returns the staged files in the order they were picked.
func (s *ImageSelection) Files() []media.File {
	files := make([]media.File, len(s.staged))
	for i, img := range s.staged {
		files[i] = img.File
	}
	return files
}

// Revoked lists preview identifiers that are no longer in use.
func (s *ImageSelection) Revoked() []string {
	return append([]string(nil), s.revoked...)
}

// ModalAction is what a modal is opened for.
type ModalAction string

const (
	ActionView   ModalAction = "view"
	ActionCreate ModalAction = "create"
	ActionUpdate ModalAction = "update"
	ActionDelete ModalAction = "delete"
)

// ModalState is where a modal is in its lifecycle.
type ModalState string

const (
	StateClosed     ModalState = "closed"
	StateOpen       ModalState = "open"
	StateSubmitting ModalState = "submitting"
	StateSucceeded  ModalState = "succeeded"
	StateFailed     ModalState = "failed"
)

// Modal tracks a product dialog:
// closed -> open -> submitting -> succeeded|failed, failed -> submitting,
// and any state -> closed.
type Modal struct {
	Action ModalAction
	State  ModalState
	Err    string
}

// NewModal returns a closed modal.
func NewModal() *Modal {
	return &Modal{State: StateClosed}
}

// OpenModal returns a modal already shown for action.
func OpenModal(action ModalAction) *Modal {
	return &Modal{Action: action, State: StateOpen}
}

// Open shows the modal for action.
func (m *Modal) Open(action ModalAction) error {
	if m.State != StateClosed {
		return fmt.Errorf("%w: open from %s", ErrInvalidTransition, m.State)
	}
	m.Action = action
	m.State = StateOpen
	m.Err = ""
	return nil
}

// Submit starts a submission. A view modal has nothing to submit.
func (m *Modal) Submit() error {
	if m.Action == ActionView || (m.State != StateOpen && m.State != StateFailed) {
		return fmt.Errorf("%w: submit %s from %s", ErrInvalidTransition, m.Action, m.State)
	}
	m.State = StateSubmitting
	m.Err = ""
	return nil
}

// Succeed ends a submission successfully.
func (m *Modal) Succeed() error {
	if m.State != StateSubmitting {
		return fmt.Errorf("%w: succeed from %s", ErrInvalidTransition, m.State)
	}
	m.State = StateSucceeded
	return nil
}

// Fail ends a submission with err, keeping the modal open for a retry.
func (m *Modal) Fail(err error) error {
	if m.State != StateSubmitting {
		return fmt.Errorf("%w: fail from %s", ErrInvalidTransition, m.State)
	}
	m.State = StateFailed
	if err != nil {
		m.Err = err.Error()
	}
	return nil
}

// Close hides the modal from any state.
func (m *Modal) Close() {
	m.State = StateClosed
	m.Action = ""
	m.Err = ""
}

// ListState is what the product list shows.
type ListState string

const (
	ListLoading ListState = "loading"
	ListError   ListState = "error"
	ListEmpty   ListState = "empty"
	ListReady   ListState = "ready"
)

// ListView is the product table with its state.
type ListView struct {
	State    ListState
	Products []models.Product
	Err      string
}

// NewListView returns a list that is still loading.
func NewListView() ListView {
	return ListView{State: ListLoading}
}

// Resolve settles the list with the result of a fetch.
func (l ListView) Resolve(products []models.Product, err error) ListView {
	switch {
	case err != nil:
		return ListView{State: ListError, Err: err.Error()}
	case len(products) == 0:
		return ListView{State: ListEmpty}
	}
	return ListView{State: ListReady, Products: products}
}
