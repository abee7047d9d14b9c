package db

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestBindValueOrNull(t *testing.T) {
	var nilString *string
	str := "kept"

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{name: "empty string", value: "", want: nil},
		{name: "spaces", value: "   ", want: nil},
		{name: "tab and newline", value: "\t\n", want: nil},
		{name: "nil", value: nil, want: nil},
		{name: "nil pointer", value: nilString, want: nil},
		{name: "zero string", value: "0", want: "0"},
		{name: "zero int", value: 0, want: 0},
		{name: "false", value: false, want: false},
		{name: "word", value: "Kraków", want: "Kraków"},
		{name: "padded word", value: " Kraków ", want: " Kraków "},
		{name: "pointer", value: &str, want: &str},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBindings()
			b.BindValueOrNull(":city", tt.value)
			got, ok := b.Value("city")
			if !ok {
				t.Fatal("binding missing")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bound %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBindValueOrNull_UnconvertibleValueKept(t *testing.T) {
	type point struct{ X, Y int }
	b := NewBindings()
	b.BindValueOrNull("p", point{1, 2})
	got, _ := b.Value(":p")
	if got != (point{1, 2}) {
		t.Errorf("bound %#v, want the original struct", got)
	}
}

func TestBindings_RebindReplacesValue(t *testing.T) {
	b := NewBindings()
	b.Bind(":user", 1)
	b.Bind("user", 2)

	list := b.List()
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Value != 2 {
		t.Errorf("value = %v, want 2", list[0].Value)
	}
}

func TestBindings_MapWrapsOutputParameters(t *testing.T) {
	var total int64
	b := NewBindings()
	b.Bind("plant", 3)
	b.BindDir("total", &total, Out)
	b.BindDir("count", &total, InOut)

	m := b.Map()
	if m["plant"] != 3 {
		t.Errorf("plant = %v, want 3", m["plant"])
	}
	out, ok := m["total"].(sql.Out)
	if !ok || out.In {
		t.Errorf("total = %#v, want output sql.Out", m["total"])
	}
	inout, ok := m["count"].(sql.Out)
	if !ok || !inout.In {
		t.Errorf("count = %#v, want in/out sql.Out", m["count"])
	}
}

func TestBindings_Apply(t *testing.T) {
	b := NewBindings()
	b.Bind(":user", 7)
	b.BindValueOrNull(":city", " ")

	tests := []struct {
		driver string
		want   string
	}{
		{driver: "mysql", want: "UPDATE t SET city = ? WHERE id = ?"},
		{driver: "postgres", want: "UPDATE t SET city = $1 WHERE id = $2"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			q, args, err := b.Apply(sqlx.NewDb(nil, tt.driver), "UPDATE t SET city = :city WHERE id = :user")
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if q != tt.want {
				t.Errorf("query = %q, want %q", q, tt.want)
			}
			if len(args) != 2 || args[0] != nil || args[1] != 7 {
				t.Errorf("args = %#v, want [nil 7]", args)
			}
		})
	}
}

func TestBindings_ApplyMissingName(t *testing.T) {
	b := NewBindings()
	if _, _, err := b.Apply(sqlx.NewDb(nil, "mysql"), "SELECT * FROM t WHERE id = :id"); err == nil {
		t.Fatal("expected error for unbound placeholder")
	}
}
