package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
)

// Mode is the state of a form: creating a new resource or editing one
type Mode int

const (
	ModeNew Mode = iota
	ModeEdit
)

// SegmentNew is the route segment that selects ModeNew
const SegmentNew = "new"

func (m Mode) String() string {
	if m == ModeNew {
		return "new"
	}
	return "edit"
}

// ModeFromSegment selects the form mode from the current route segment.
// Only "new" creates; any other segment edits.
func ModeFromSegment(segment string) Mode {
	if segment == SegmentNew {
		return ModeNew
	}
	return ModeEdit
}

// Titles produces the page title of each mode
type Titles[T Item] struct {
	Creation string
	Edition  func(resource T) string
}

// SubmitResult is the outcome of a submission
type SubmitResult[T Item] struct {
	OK       bool
	Err      error
	Resource T
	Toast    *Toast
	// Redirect is the reload target after a successful submission
	Redirect string
}

// Form drives a create/edit page. The mode is chosen once by Init and
// never re-evaluated.
type Form[T Item] struct {
	remote   Remote[T]
	basePath string
	newFn    func() T
	titles   Titles[T]

	mode        Mode
	initialized bool

	Resource            T
	ServerErrorMessages []string
	Toast               *Toast
}

// NewForm creates a form. basePath is the UI path of the resource (for
// example "/categories"), used to build the reload target.
func NewForm[T Item](remote Remote[T], basePath string, newFn func() T, titles Titles[T]) *Form[T] {
	if titles.Creation == "" {
		titles.Creation = "New"
	}
	if titles.Edition == nil {
		titles.Edition = func(T) string { return "Edit" }
	}
	return &Form[T]{
		remote:   remote,
		basePath: "/" + strings.Trim(basePath, "/"),
		newFn:    newFn,
		titles:   titles,
		Resource: newFn(),
	}
}

// Init selects the mode from segment. In ModeEdit the resource with id is
// fetched and becomes the form state.
func (f *Form[T]) Init(ctx context.Context, segment string, id int32) error {
	if f.initialized {
		return ErrFormInitialized
	}
	f.initialized = true
	f.mode = ModeFromSegment(segment)

	if f.mode == ModeNew {
		return nil
	}

	resource, err := f.remote.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load resource %d: %w", id, err)
	}
	f.Resource = resource
	return nil
}

// Mode returns the mode chosen by Init
func (f *Form[T]) Mode() Mode {
	return f.mode
}

// IsNew reports whether the form creates a resource
func (f *Form[T]) IsNew() bool {
	return f.mode == ModeNew
}

// PageTitle returns the title of the current mode
func (f *Form[T]) PageTitle() string {
	if f.mode == ModeNew {
		return f.titles.Creation
	}
	return f.titles.Edition(f.Resource)
}

// Action returns the URL the form posts back to
func (f *Form[T]) Action() string {
	if f.mode == ModeNew {
		return f.basePath + "/" + SegmentNew
	}
	return f.EditPath(f.Resource)
}

// EditPath returns base/{id}/edit for resource
func (f *Form[T]) EditPath(resource T) string {
	id, _ := resource.Identity()
	return f.basePath + "/" + strconv.FormatInt(int64(id), 10) + "/edit"
}

// Submit creates or updates resource depending on the mode. The result
// carries the toast to show and, on success, where to reload.
func (f *Form[T]) Submit(ctx context.Context, resource T) SubmitResult[T] {
	f.ServerErrorMessages = nil
	f.Resource = resource

	var (
		saved T
		err   error
	)
	if f.mode == ModeNew {
		saved, err = f.remote.Create(ctx, resource)
	} else {
		saved, err = f.remote.Update(ctx, resource)
	}

	if err != nil {
		return f.actionsForError(err)
	}
	if _, ok := saved.Identity(); !ok {
		return f.actionsForError(domain.ErrResourceNotPersisted)
	}
	return f.actionsForSuccess(saved)
}

func (f *Form[T]) actionsForSuccess(saved T) SubmitResult[T] {
	f.Resource = saved
	f.Toast = SuccessToast()
	return SubmitResult[T]{
		OK:       true,
		Resource: saved,
		Toast:    f.Toast,
		Redirect: f.EditPath(saved),
	}
}

func (f *Form[T]) actionsForError(err error) SubmitResult[T] {
	f.Toast = ErrorToast(MsgFailure)
	f.ServerErrorMessages = ServerErrorMessages(err)
	return SubmitResult[T]{
		Err:      err,
		Resource: f.Resource,
		Toast:    f.Toast,
	}
}
