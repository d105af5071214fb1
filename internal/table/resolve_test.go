package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type owner struct {
	Name  string `json:"name"`
	Email string
}

type repo struct {
	Title string `json:"title"`
	Stars int    `json:"stars"`
	Owner *owner `json:"owner"`
	priv  string
}

func TestResolve(t *testing.T) {
	r := repo{Title: "go", Stars: 3, Owner: &owner{Name: "ann", Email: "a@x"}, priv: "x"}

	tests := []struct {
		name string
		row  any
		path string
		want any
	}{
		{name: "json tag", row: r, path: "title", want: "go"},
		{name: "field name", row: r, path: "Stars", want: 3},
		{name: "nested pointer", row: r, path: "owner.name", want: "ann"},
		{name: "nested field name", row: &r, path: "owner.Email", want: "a@x"},
		{name: "unexported", row: r, path: "priv", want: nil},
		{name: "missing segment", row: r, path: "owner.age", want: nil},
		{name: "through nil", row: repo{}, path: "owner.name", want: nil},
		{name: "map", row: map[string]any{"a": map[string]any{"b": 1}}, path: "a.b", want: 1},
		{name: "typed map", row: map[string]string{"k": "v"}, path: "k", want: "v"},
		{name: "nil row", row: nil, path: "x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.row, tt.path))
		})
	}
}

func TestCompare(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	assert.Equal(t, -1, compare(1, 2))
	assert.Equal(t, 1, compare(int64(10), 9.5))
	assert.Equal(t, -1, compare("a", "b"))
	assert.Equal(t, 1, compare("b", "B"))
	assert.Equal(t, -1, compare(t1, t2))
	assert.Equal(t, 0, compare("a", 1))
	assert.Equal(t, 0, compare(nil, 1))
	assert.Equal(t, 0, compare(true, false))
}

func TestContains(t *testing.T) {
	assert.True(t, contains("John Doe", "john"))
	assert.True(t, contains(12345, "234"))
	assert.False(t, contains("", ""))
	assert.False(t, contains(0, "0"))
	assert.False(t, contains(false, "false"))
	assert.False(t, contains(nil, "nil"))
	assert.False(t, contains(time.Time{}, "0001"))
	assert.True(t, contains(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "2024-03-02"))
}
