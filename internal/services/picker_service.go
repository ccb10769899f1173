package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/models"
	"github.com/terraincognita07/datepick/internal/picker"
)

var (
	ErrSessionNotFound      = errors.New("picker session not found")
	ErrSessionLoadFailed    = errors.New("load picker session failed")
	ErrSessionSaveFailed    = errors.New("save picker session failed")
	ErrSessionRestoreFailed = errors.New("restore picker session failed")
	ErrInvalidPurgeAge      = errors.New("purge age must be positive")
	ErrSessionNotControlled = errors.New("picker visibility is not host-controlled")
)

type PickerSessionRepository interface {
	Create(session *models.PickerSession) error
	FindByID(id string) (models.PickerSession, bool, error)
	Save(session *models.PickerSession) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// FormatterFunc returns the month and weekday names for a language.
type FormatterFunc func(language string) calendar.Formatter

// PickerResult is the state after a service call: the persisted session, the
// rendered view and the patches the controller emitted on the way.
type PickerResult struct {
	Session models.PickerSession
	View    picker.View
	Changes []picker.Patch
}

// PickerService is the host around picker.Controller: it owns the stored
// props, merges every emitted patch and feeds the result back.
type PickerService struct {
	sessions   PickerSessionRepository
	formatters FormatterFunc
	defaults   PickerDefaults
	now        func() time.Time
	newID      func() string
	locks      *sessionLocks
}

func NewPickerService(sessions PickerSessionRepository, formatters FormatterFunc, defaults PickerDefaults) *PickerService {
	return &PickerService{
		sessions:   sessions,
		formatters: formatters,
		defaults:   defaults,
		now:        time.Now,
		newID:      uuid.NewString,
		locks:      newSessionLocks(),
	}
}

// WithClock replaces the clock used for "today" and new-session defaults.
func (service *PickerService) WithClock(clock func() time.Time) *PickerService {
	if clock != nil {
		service.now = clock
	}
	return service
}

func (service *PickerService) Create(input CreatePickerInput) (PickerResult, error) {
	result, err := service.Preview(input)
	if err != nil {
		return PickerResult{}, err
	}
	result.Session.ID = service.newID()
	if err := service.sessions.Create(&result.Session); err != nil {
		return PickerResult{}, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return result, nil
}

// Preview validates input and renders the picker it describes without storing
// anything.
func (service *PickerService) Preview(input CreatePickerInput) (PickerResult, error) {
	session, err := BuildPickerSession(input, service.defaults, service.now())
	if err != nil {
		return PickerResult{}, err
	}
	run, err := service.restore(session, session.Language)
	if err != nil {
		return PickerResult{}, fmt.Errorf("%w: %w", ErrInvalidSessionInput, err)
	}
	return PickerResult{Session: session, View: run.controller.View()}, nil
}

func (service *PickerService) Get(id string, language string) (PickerResult, error) {
	session, err := service.load(id)
	if err != nil {
		return PickerResult{}, err
	}
	run, err := service.restore(session, language)
	if err != nil {
		return PickerResult{}, fmt.Errorf("%w: %v", ErrSessionRestoreFailed, err)
	}
	return PickerResult{Session: session, View: run.controller.View()}, nil
}

// Execute restores the picker, runs one command against it and persists the
// merged state. Calls for the same session run one at a time.
func (service *PickerService) Execute(id string, command Command, language string) (PickerResult, error) {
	unlock := service.locks.lock(strings.TrimSpace(id))
	defer unlock()

	session, err := service.load(id)
	if err != nil {
		return PickerResult{}, err
	}
	if command.Kind == CommandSetVisibility && !session.Controlled {
		return PickerResult{}, ErrSessionNotControlled
	}
	run, err := service.restore(session, language)
	if err != nil {
		return PickerResult{}, fmt.Errorf("%w: %v", ErrSessionRestoreFailed, err)
	}

	if err := command.run(run.controller); err != nil {
		return PickerResult{}, err
	}
	if run.applyErr != nil {
		return PickerResult{}, fmt.Errorf("%w: %v", ErrSessionRestoreFailed, run.applyErr)
	}

	run.store(&session)
	if err := service.sessions.Save(&session); err != nil {
		return PickerResult{}, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return PickerResult{Session: session, View: run.controller.View(), Changes: run.changes}, nil
}

// PurgeOlderThan deletes sessions idle for longer than age.
func (service *PickerService) PurgeOlderThan(age time.Duration) (int64, error) {
	if age <= 0 {
		return 0, ErrInvalidPurgeAge
	}
	return service.sessions.DeleteOlderThan(service.now().UTC().Add(-age))
}

func (service *PickerService) load(id string) (models.PickerSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.PickerSession{}, ErrSessionNotFound
	}
	session, found, err := service.sessions.FindByID(id)
	if err != nil {
		return models.PickerSession{}, fmt.Errorf("%w: %v", ErrSessionLoadFailed, err)
	}
	if !found {
		return models.PickerSession{}, ErrSessionNotFound
	}
	return session, nil
}

type pickerRun struct {
	controller *picker.Controller
	props      picker.Props
	changes    []picker.Patch
	applyErr   error
}

func (run *pickerRun) onChange(patch picker.Patch) {
	run.changes = append(run.changes, patch)
	run.props = patch.Apply(run.props)
	if err := run.controller.SetProps(run.props); err != nil && run.applyErr == nil {
		run.applyErr = err
	}
}

func (run *pickerRun) store(session *models.PickerSession) {
	session.DisplayedDate = run.props.DisplayedDate
	session.Date = run.props.Date
	session.StartDate = run.props.StartDate
	session.EndDate = run.props.EndDate
	session.Open = run.controller.IsOpen()
	session.Selecting = run.controller.Selecting()
}

func (service *PickerService) restore(session models.PickerSession, language string) (*pickerRun, error) {
	location, err := time.LoadLocation(session.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPickerTimezone, session.Timezone)
	}
	if strings.TrimSpace(language) == "" {
		language = session.Language
	}

	var formatter calendar.Formatter = calendar.EnglishFormatter{}
	if service.formatters != nil {
		formatter = service.formatters(language)
	}

	adapter, err := NewDateAdapter(session.DateAdapter, calendar.Options{
		WeekStart: time.Weekday(session.WeekStart),
		Location:  location,
		Formatter: formatter,
		Clock:     service.now,
	})
	if err != nil {
		return nil, err
	}

	props, err := propsFromSession(session, location)
	if err != nil {
		return nil, err
	}

	visibility := picker.SelfManaged(session.Open)
	if session.Controlled {
		visibility = picker.Controlled(session.Open)
	}

	run := &pickerRun{props: props}
	controller, err := picker.NewController(picker.Config{
		Props:      props,
		Adapter:    adapter,
		OnChange:   run.onChange,
		Visibility: visibility,
		Selecting:  session.Selecting,
	})
	if err != nil {
		return nil, err
	}
	run.controller = controller
	return run, nil
}

func propsFromSession(session models.PickerSession, location *time.Location) (picker.Props, error) {
	mode, err := picker.ParseMode(session.Mode)
	if err != nil {
		return picker.Props{}, err
	}
	localize := func(value *time.Time) *time.Time {
		if value == nil {
			return nil
		}
		localized := calendar.DateAtLocation(*value, location)
		return &localized
	}
	return picker.Props{
		DisplayedDate: calendar.DateAtLocation(session.DisplayedDate, location),
		Mode:          mode,
		Selection: picker.Selection{
			Date:      localize(session.Date),
			StartDate: localize(session.StartDate),
			EndDate:   localize(session.EndDate),
		},
		Bounds: picker.Bounds{
			Min: localize(session.MinDate),
			Max: localize(session.MaxDate),
		},
	}, nil
}
