package db

import (
	"database/sql"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/validate"
)

// Direction is how a bound parameter is used by the statement.
type Direction int

const (
	In Direction = iota
	Out
	InOut
)

// Binding pairs a named placeholder with a value for one execution.
type Binding struct {
	Name      string
	Value     any
	Direction Direction
}

// Bindings collects named parameters for one statement. Placeholder names may
// be given with or without the leading colon.
type Bindings struct {
	list  []Binding
	index map[string]int
}

// NewBindings returns an empty set of bindings.
func NewBindings() *Bindings {
	return &Bindings{index: make(map[string]int)}
}

// Bind binds value to placeholder as an input parameter.
func (b *Bindings) Bind(placeholder string, value any) {
	b.BindDir(placeholder, value, In)
}

// BindDir binds value to placeholder with the given direction. For Out and
// InOut, value must be a pointer the driver writes the result into.
func (b *Bindings) BindDir(placeholder string, value any, dir Direction) {
	name := strings.TrimPrefix(placeholder, ":")
	bd := Binding{Name: name, Value: value, Direction: dir}
	if i, ok := b.index[name]; ok {
		b.list[i] = bd
		return
	}
	b.index[name] = len(b.list)
	b.list = append(b.list, bd)
}

// BindValueOrNull binds NULL instead of value when value is nil or a blank
// string, so unset form fields are stored as NULL rather than "". Every other
// value, including 0, false and "0", is bound unchanged.
func (b *Bindings) BindValueOrNull(placeholder string, value any) {
	b.BindValueOrNullDir(placeholder, value, In)
}

// BindValueOrNullDir is BindValueOrNull with an explicit direction.
func (b *Bindings) BindValueOrNullDir(placeholder string, value any, dir Direction) {
	if isNullish(value) {
		value = nil
	}
	b.BindDir(placeholder, value, dir)
}

// Value returns the value bound to placeholder.
func (b *Bindings) Value(placeholder string) (any, bool) {
	i, ok := b.index[strings.TrimPrefix(placeholder, ":")]
	if !ok {
		return nil, false
	}
	return b.list[i].Value, true
}

// List returns the bindings in the order they were first bound.
func (b *Bindings) List() []Binding {
	return append([]Binding(nil), b.list...)
}

// Map returns the bindings keyed by name. Out and InOut parameters are
// wrapped in sql.Out.
func (b *Bindings) Map() map[string]any {
	m := make(map[string]any, len(b.list))
	for _, bd := range b.list {
		switch bd.Direction {
		case Out:
			m[bd.Name] = sql.Out{Dest: bd.Value}
		case InOut:
			m[bd.Name] = sql.Out{Dest: bd.Value, In: true}
		default:
			m[bd.Name] = bd.Value
		}
	}
	return m
}

// Apply expands the :name placeholders of query into the driver's bindvar
// format and returns the positional arguments.
func (b *Bindings) Apply(db sqlx.ExtContext, query string) (string, []any, error) {
	q, args, err := sqlx.Named(query, b.Map())
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(q), args, nil
}

func isNullish(value any) bool {
	if value == nil {
		return true
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	// Values without a string form are never blank.
	blank, err := validate.IsEmptyOrWhitespace(value)
	return err == nil && blank
}
