// Package attachment manages the lifecycle of a product's image through a
// save cycle: never set, persisted on the server, newly staged on disk, or
// explicitly marked for removal.
package attachment

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/OussamaERrafif/storefront/internal/domain"
)

type state int

const (
	stateNone state = iota
	statePersisted
	stateStaged
	stateRemoveRequested
)

// Image tracks one product's attachment state across a form's lifetime.
// It is not safe for concurrent use; each form owns exactly one Image and
// must call Release when the form is discarded.
type Image struct {
	st         state
	url        string // last persisted reference, if any
	tempPath   string // staged binary on disk
	sourceName string // filename as picked by the user
}

// None returns an image state for a product that has no image.
func None() *Image {
	return &Image{st: stateNone}
}

// Persisted returns an image state backed by a server-resolved reference
// from a prior save.
func Persisted(url string) *Image {
	if url == "" {
		return None()
	}
	return &Image{st: statePersisted, url: url}
}

// Stage copies a newly picked file into a temporary staging area, superseding
// any previously staged binary. A persisted reference is kept as the baseline
// until the save succeeds.
func (img *Image) Stage(name string, r io.Reader) error {
	f, err := os.CreateTemp("", "attachment-"+uuid.NewString())
	if err != nil {
		return fmt.Errorf("stage attachment %q: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("stage attachment %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("stage attachment %q: %w", name, err)
	}

	img.discardStaged()
	img.st = stateStaged
	img.tempPath = f.Name()
	img.sourceName = name
	return nil
}

// Remove records the user's delete action. A staged file is discarded and the
// image falls back to its persisted baseline if one exists; deleting a
// persisted image keeps the removal intent so the save can tell the server
// explicitly, since an absent binary alone does not mean "clear it".
func (img *Image) Remove() {
	switch img.st {
	case stateStaged:
		img.discardStaged()
		if img.url != "" {
			img.st = statePersisted
		} else {
			img.st = stateNone
		}
	case statePersisted:
		img.st = stateRemoveRequested
		img.url = ""
	}
}

// Release frees the staged temporary file, if any. Idempotent; owners defer
// it for the lifetime of the form that created the Image.
func (img *Image) Release() {
	img.discardStaged()
	if img.st == stateStaged {
		if img.url != "" {
			img.st = statePersisted
		} else {
			img.st = stateNone
		}
	}
}

func (img *Image) discardStaged() {
	if img.tempPath != "" {
		os.Remove(img.tempPath)
		img.tempPath = ""
		img.sourceName = ""
	}
}

// Resolve produces the save-time payload: the staged binary when one exists,
// otherwise the persisted reference forwarded unchanged, otherwise neither.
// The caller owns the returned File and must close it.
func (img *Image) Resolve() (domain.AttachmentPayload, error) {
	switch img.st {
	case stateStaged:
		f, err := os.Open(img.tempPath)
		if err != nil {
			return domain.AttachmentPayload{}, fmt.Errorf("%w: %v", domain.ErrAttachmentUnreadable, err)
		}
		return domain.AttachmentPayload{
			File:     f,
			Filename: img.sourceName,
			ImageURL: img.url,
		}, nil
	case statePersisted:
		return domain.AttachmentPayload{ImageURL: img.url}, nil
	default:
		// None and RemoveRequested both send neither a binary nor a
		// reference; the empty image_url field carries the removal intent.
		return domain.AttachmentPayload{}, nil
	}
}
