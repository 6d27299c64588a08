package entity

import (
	"time"

	"github.com/google/uuid"
)

// Owned carries the client-supplied id and the owner of a record.
// Ids are unique within one kind only.
type Owned struct {
	ID     string    `json:"id" validate:"required,max=128,record_id"`
	UserID uuid.UUID `json:"user_id"`
}

func (o *Owned) Key() string {
	return o.ID
}

func (o *Owned) Owner() uuid.UUID {
	return o.UserID
}

func (o *Owned) Own(uid uuid.UUID) {
	o.UserID = uid
}

// Dated carries the (owner, date) key of keyed-upsert records.
type Dated struct {
	UserID uuid.UUID `json:"user_id"`
	Date   string    `json:"date" validate:"required,datetime=2006-01-02"`
}

func (d *Dated) Key() string {
	return d.Date
}

func (d *Dated) Owner() uuid.UUID {
	return d.UserID
}

func (d *Dated) Own(uid uuid.UUID) {
	d.UserID = uid
}

func (d *Dated) SetDate(date string) {
	d.Date = date
}

type Expense struct {
	Owned
	Amount   float64 `json:"amount"`
	Category string  `json:"category" validate:"required,max=64"`
	Note     string  `json:"note" validate:"max=1024"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type Todo struct {
	Owned
	Text      string    `json:"text" validate:"required,max=1024"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

type Habit struct {
	Owned
	Name string `json:"name" validate:"required,max=256"`
}

type Reminder struct {
	Owned
	Title    string `json:"title" validate:"required,max=256"`
	Datetime string `json:"datetime" validate:"required,max=64"`
	Fired    bool   `json:"fired"`
}

type Goal struct {
	Owned
	Title      string `json:"title" validate:"required,max=256"`
	TargetDate string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
	Progress   int    `json:"progress" validate:"gte=0,lte=100"`
	Done       bool   `json:"done"`
}

type Reflection struct {
	Dated
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
	Note   string `json:"note" validate:"max=4096"`
}

type CalendarNote struct {
	Dated
	Note     string `json:"note" validate:"max=4096"`
	Occasion string `json:"occasion" validate:"max=256"`
}

// HabitLog marks a habit as done on a date. It has no payload.
type HabitLog struct {
	HabitID string    `json:"habit_id" validate:"required,max=128,record_id"`
	UserID  uuid.UUID `json:"user_id"`
	Date    string    `json:"date" validate:"required,datetime=2006-01-02"`
}
