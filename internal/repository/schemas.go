package repository

import "github.com/limbo/galaxy/pkg/entity"

var ExpensesSchema = OwnedSchema[entity.Expense]{
	Table:         "expenses",
	InsertColumns: []string{"id", "amount", "category", "note", "date"},
	InsertArgs: func(e *entity.Expense) []any {
		return []any{e.ID, e.Amount, e.Category, e.Note, e.Date}
	},
	SelectColumns: []string{"id", "user_id", "amount", "category", "note", "date"},
	ScanDest: func(e *entity.Expense) []any {
		return []any{&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Note, &e.Date}
	},
	OrderBy: "date DESC, created_at DESC",
}

var TodosSchema = OwnedSchema[entity.Todo]{
	Table:         "todos",
	InsertColumns: []string{"id", "text"},
	InsertArgs: func(t *entity.Todo) []any {
		return []any{t.ID, t.Text}
	},
	SelectColumns: []string{"id", "user_id", "text", "done", "created_at"},
	ScanDest: func(t *entity.Todo) []any {
		return []any{&t.ID, &t.UserID, &t.Text, &t.Done, &t.CreatedAt}
	},
	OrderBy:   "created_at DESC",
	Updatable: []string{"done"},
}

var HabitsSchema = OwnedSchema[entity.Habit]{
	Table:         "habits",
	InsertColumns: []string{"id", "name"},
	InsertArgs: func(h *entity.Habit) []any {
		return []any{h.ID, h.Name}
	},
	SelectColumns: []string{"id", "user_id", "name"},
	ScanDest: func(h *entity.Habit) []any {
		return []any{&h.ID, &h.UserID, &h.Name}
	},
	OrderBy: "created_at",
	Cascade: []string{
		`DELETE FROM habit_logs WHERE habit_id = $1 AND user_id = $2;`,
	},
}

var RemindersSchema = OwnedSchema[entity.Reminder]{
	Table:         "reminders",
	InsertColumns: []string{"id", "title", "datetime"},
	InsertArgs: func(r *entity.Reminder) []any {
		return []any{r.ID, r.Title, r.Datetime}
	},
	SelectColumns: []string{"id", "user_id", "title", "datetime", "fired"},
	ScanDest: func(r *entity.Reminder) []any {
		return []any{&r.ID, &r.UserID, &r.Title, &r.Datetime, &r.Fired}
	},
	OrderBy:   "datetime ASC",
	Updatable: []string{"fired"},
}

var GoalsSchema = OwnedSchema[entity.Goal]{
	Table:         "goals",
	InsertColumns: []string{"id", "title", "target_date", "progress"},
	InsertArgs: func(g *entity.Goal) []any {
		return []any{g.ID, g.Title, g.TargetDate, g.Progress}
	},
	SelectColumns: []string{"id", "user_id", "title", "target_date", "progress", "done"},
	ScanDest: func(g *entity.Goal) []any {
		return []any{&g.ID, &g.UserID, &g.Title, &g.TargetDate, &g.Progress, &g.Done}
	},
	OrderBy:   "created_at",
	Updatable: []string{"progress", "done"},
}

var ReflectionsSchema = KeyedSchema[entity.Reflection]{
	Table:          "reflections",
	PayloadColumns: []string{"rating", "note"},
	PayloadArgs: func(r *entity.Reflection) []any {
		return []any{r.Rating, r.Note}
	},
	ScanDest: func(r *entity.Reflection) []any {
		return []any{&r.UserID, &r.Date, &r.Rating, &r.Note}
	},
	OrderBy: "date DESC",
}

var CalendarSchema = KeyedSchema[entity.CalendarNote]{
	Table:          "calendar_events",
	PayloadColumns: []string{"note", "occasion"},
	PayloadArgs: func(c *entity.CalendarNote) []any {
		return []any{c.Note, c.Occasion}
	},
	ScanDest: func(c *entity.CalendarNote) []any {
		return []any{&c.UserID, &c.Date, &c.Note, &c.Occasion}
	},
	OrderBy: "date",
}
