package picker

import (
	"fmt"
	"time"

	"cloudeng.io/errors"
	"github.com/terraincognita07/datepick/internal/calendar"
)

var (
	ErrMissingAdapter        = errors.New("date adapter is required")
	ErrMissingChangeCallback = errors.New("change callback is required")
	ErrMissingDisplayedDate  = errors.New("displayed date is required")
	ErrInvalidBoundsOrder    = errors.New("min date is after max date")
)

// Props are the host-owned inputs. The host re-supplies them after merging
// every Patch it receives.
type Props struct {
	DisplayedDate time.Time
	Mode          Mode
	Selection
	Bounds
}

// Visibility is resolved once at construction: either the host controls the
// open state, or the controller manages it itself.
type Visibility struct {
	controlled bool
	open       bool
}

func Controlled(open bool) Visibility {
	return Visibility{controlled: true, open: open}
}

func SelfManaged(open bool) Visibility {
	return Visibility{open: open}
}

// VisibilityFrom maps an optional host "open" input: nil means self-managed.
func VisibilityFrom(open *bool, selfManagedOpen bool) Visibility {
	if open != nil {
		return Controlled(*open)
	}
	return SelfManaged(selfManagedOpen)
}

func (visibility Visibility) Controlled() bool {
	return visibility.controlled
}

func (visibility Visibility) Open() bool {
	return visibility.open
}

type Config struct {
	Props      Props
	Adapter    calendar.Adapter
	OnChange   func(Patch)
	Visibility Visibility
	// Selecting restores an in-progress range pick.
	Selecting bool
}

func (config Config) validate() error {
	errs := errors.M{}
	if config.Adapter == nil {
		errs.Append(ErrMissingAdapter)
	}
	if config.OnChange == nil {
		errs.Append(ErrMissingChangeCallback)
	}
	if config.Props.DisplayedDate.IsZero() {
		errs.Append(ErrMissingDisplayedDate)
	}
	if config.Adapter != nil {
		errs.Append(validateBounds(config.Adapter, config.Props.Bounds))
	}
	return errs.Err()
}

func validateBounds(adapter calendar.Adapter, bounds Bounds) error {
	if bounds.Min != nil && bounds.Max != nil && adapter.IsAfterDay(*bounds.Min, *bounds.Max) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidBoundsOrder, bounds.Min.Format(calendar.DayLayout), bounds.Max.Format(calendar.DayLayout))
	}
	return nil
}

type View struct {
	Grid
	Open      bool
	Selecting bool
	Mode      Mode
}

// Controller composes the grid builder and the selector. It is not safe for
// concurrent use.
type Controller struct {
	adapter    calendar.Adapter
	onChange   func(Patch)
	props      Props
	visibility Visibility
	selector   *Selector
	grid       Grid
	builds     int
}

func NewController(config Config) (*Controller, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	controller := &Controller{
		adapter:    config.Adapter,
		onChange:   config.OnChange,
		props:      config.Props,
		visibility: config.Visibility,
		selector:   NewSelector(config.Adapter, config.Props.Mode, config.Selecting),
	}
	controller.rebuild()
	return controller, nil
}

func (controller *Controller) rebuild() {
	controller.grid = BuildGrid(
		controller.adapter,
		controller.props.DisplayedDate,
		controller.props.Mode,
		controller.props.Selection,
		controller.props.Bounds,
	)
	controller.builds++
}

func (controller *Controller) emit(patch Patch) {
	if patch.Empty() {
		return
	}
	controller.onChange(patch)
}

func (controller *Controller) IsOpen() bool {
	return controller.visibility.open
}

func (controller *Controller) Selecting() bool {
	return controller.selector.Picking()
}

func (controller *Controller) Props() Props {
	return controller.props
}

func (controller *Controller) View() View {
	return View{
		Grid:      controller.grid,
		Open:      controller.visibility.open,
		Selecting: controller.selector.Picking(),
		Mode:      controller.props.Mode,
	}
}

// SetProps takes the host's merged state. The grid is rebuilt only when a
// date-bearing input or the mode changed.
func (controller *Controller) SetProps(props Props) error {
	if props.DisplayedDate.IsZero() {
		return ErrMissingDisplayedDate
	}
	if err := validateBounds(controller.adapter, props.Bounds); err != nil {
		return err
	}
	if props.Mode != controller.props.Mode {
		controller.selector = NewSelector(controller.adapter, props.Mode, false)
	}
	changed := !controller.sameProps(props)
	controller.props = props
	if changed {
		controller.rebuild()
	}
	return nil
}

func (controller *Controller) sameProps(other Props) bool {
	current := controller.props
	return current.Mode == other.Mode &&
		controller.adapter.IsSameDay(current.DisplayedDate, other.DisplayedDate) &&
		controller.sameDay(current.Date, other.Date) &&
		controller.sameDay(current.StartDate, other.StartDate) &&
		controller.sameDay(current.EndDate, other.EndDate) &&
		controller.sameDay(current.Min, other.Min) &&
		controller.sameDay(current.Max, other.Max)
}

func (controller *Controller) sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return controller.adapter.IsSameDay(*a, *b)
}

// Open shows the picker. It is a no-op when the host controls visibility.
func (controller *Controller) Open() {
	if controller.visibility.controlled {
		return
	}
	controller.visibility.open = true
}

// Close hides the picker and ends any in-progress pick. It is a no-op when the
// host controls visibility; see SetControlledOpen.
func (controller *Controller) Close() {
	if controller.visibility.controlled {
		return
	}
	controller.visibility.open = false
	controller.finishSelection()
}

// SetControlledOpen mirrors the host's open flag. Closing through it runs the
// same side effects as Close in self-managed mode.
func (controller *Controller) SetControlledOpen(open bool) {
	if !controller.visibility.controlled {
		return
	}
	wasOpen := controller.visibility.open
	controller.visibility.open = open
	if wasOpen && !open {
		controller.finishSelection()
	}
}

func (controller *Controller) finishSelection() {
	if patch, ok := controller.selector.Close(controller.props.Selection); ok {
		controller.emit(patch)
	}
}

// PickDay selects a day of the displayed month. Padding, out-of-month and
// disabled days are ignored. It reports whether a change was emitted.
func (controller *Controller) PickDay(day int) bool {
	cell, ok := controller.grid.Cell(day)
	if !ok || !cell.Pickable() {
		return false
	}
	patch, ok := controller.selector.PickDay(controller.props.DisplayedDate, controller.props.Selection, day)
	if !ok {
		return false
	}
	controller.emit(patch)
	return true
}

func (controller *Controller) PreviousMonth() {
	previous := controller.adapter.SubtractMonths(controller.props.DisplayedDate, 1)
	controller.emit(Patch{DisplayedDate: &previous})
}

func (controller *Controller) NextMonth() {
	next := controller.adapter.AddMonths(controller.props.DisplayedDate, 1)
	controller.emit(Patch{DisplayedDate: &next})
}

func (controller *Controller) Today() {
	controller.applyPreset(todayPatch(controller.adapter, controller.props.Mode))
}

func (controller *Controller) ThisWeek() {
	adapter := controller.adapter
	controller.applyPreset(periodPatch(adapter, controller.props.Mode, adapter.StartOfWeek(), adapter.EndOfWeek()), false)
}

func (controller *Controller) ThisMonth() {
	adapter := controller.adapter
	controller.applyPreset(periodPatch(adapter, controller.props.Mode, adapter.StartOfMonth(), adapter.EndOfMonth()), false)
}

// ApplyPreset bypasses the selector and emits a complete selection. Only an
// unknown preset fails.
func (controller *Controller) ApplyPreset(preset Preset) error {
	patch, picking, err := presetPatch(controller.adapter, controller.props.Mode, preset)
	if err != nil {
		return err
	}
	controller.applyPreset(patch, picking)
	return nil
}

func (controller *Controller) applyPreset(patch Patch, picking bool) {
	controller.selector.Reset()
	controller.selector.picking = picking
	controller.emit(patch)
}
