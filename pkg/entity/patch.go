package entity

// Change is one column assignment of a partial update.
type Change struct {
	Column string
	Value  any
}

// Patch is a partial update of a record of type T. Only supplied (non-nil)
// fields are applied.
type Patch[T any] interface {
	Changes() []Change
	Apply(rec *T)
}

type TodoPatch struct {
	Done *bool `json:"done"`
}

func (p TodoPatch) Changes() []Change {
	var ch []Change
	if p.Done != nil {
		ch = append(ch, Change{Column: "done", Value: *p.Done})
	}
	return ch
}

func (p TodoPatch) Apply(t *Todo) {
	if p.Done != nil {
		t.Done = *p.Done
	}
}

type GoalPatch struct {
	Progress *int  `json:"progress" validate:"omitempty,gte=0,lte=100"`
	Done     *bool `json:"done"`
}

func (p GoalPatch) Changes() []Change {
	var ch []Change
	if p.Progress != nil {
		ch = append(ch, Change{Column: "progress", Value: *p.Progress})
	}
	if p.Done != nil {
		ch = append(ch, Change{Column: "done", Value: *p.Done})
	}
	return ch
}

func (p GoalPatch) Apply(g *Goal) {
	if p.Progress != nil {
		g.Progress = *p.Progress
	}
	if p.Done != nil {
		g.Done = *p.Done
	}
}

type ReminderPatch struct {
	Fired *bool `json:"fired"`
}

func (p ReminderPatch) Changes() []Change {
	var ch []Change
	if p.Fired != nil {
		ch = append(ch, Change{Column: "fired", Value: *p.Fired})
	}
	return ch
}

func (p ReminderPatch) Apply(r *Reminder) {
	if p.Fired != nil {
		r.Fired = *p.Fired
	}
}
