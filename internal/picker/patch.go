package picker

import "time"

// DateChange is one key of a Patch. Set reports whether the key is present;
// a present key with a nil Value clears the field.
type DateChange struct {
	Set   bool
	Value *time.Time
}

func setTo(value time.Time) DateChange {
	return DateChange{Set: true, Value: datePtr(value)}
}

func cleared() DateChange {
	return DateChange{Set: true}
}

func (change DateChange) apply(current *time.Time) *time.Time {
	if !change.Set {
		return current
	}
	if change.Value == nil {
		return nil
	}
	return datePtr(*change.Value)
}

// Patch is the partial selection update handed to the host's change callback.
// The host merges it into its own state and feeds the result back as Props.
type Patch struct {
	Date          DateChange
	StartDate     DateChange
	EndDate       DateChange
	DisplayedDate *time.Time
	Selecting     *bool
}

func (patch Patch) Empty() bool {
	return !patch.Date.Set && !patch.StartDate.Set && !patch.EndDate.Set &&
		patch.DisplayedDate == nil && patch.Selecting == nil
}

// Keys lists the present keys using the names of the change payload.
func (patch Patch) Keys() []string {
	keys := make([]string, 0, 5)
	if patch.Date.Set {
		keys = append(keys, "date")
	}
	if patch.StartDate.Set {
		keys = append(keys, "startDate")
	}
	if patch.EndDate.Set {
		keys = append(keys, "endDate")
	}
	if patch.DisplayedDate != nil {
		keys = append(keys, "displayedDate")
	}
	if patch.Selecting != nil {
		keys = append(keys, "selecting")
	}
	return keys
}

// Apply merges the patch into props. It is the reference merge a host can use
// instead of writing its own.
func (patch Patch) Apply(props Props) Props {
	props.Date = patch.Date.apply(props.Date)
	props.StartDate = patch.StartDate.apply(props.StartDate)
	props.EndDate = patch.EndDate.apply(props.EndDate)
	if patch.DisplayedDate != nil {
		props.DisplayedDate = *patch.DisplayedDate
	}
	return props
}
