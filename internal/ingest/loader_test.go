package ingest

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsert(t *testing.T) {
	question := func(int) string { return "?" }
	numbered := func(n int) string { return "$" + strconv.Itoa(n) }

	got := buildInsert("people", []string{"name", "age"}, question)
	assert.Equal(t, `INSERT INTO "people" ("name", "age") VALUES (?, ?)`, got)

	got = buildInsert("people", []string{"name", "age", "city"}, numbered)
	assert.Equal(t, `INSERT INTO "people" ("name", "age", "city") VALUES ($1, $2, $3)`, got)
}

func TestNormalizeArity(t *testing.T) {
	tests := []struct {
		name  string
		row   []string
		width int
		want  []string
	}{
		{name: "exact fit", row: []string{"a", "b"}, width: 2, want: []string{"a", "b"}},
		{name: "extras truncated", row: []string{"a", "b", "c"}, width: 2, want: []string{"a", "b"}},
		{name: "missing padded", row: []string{"a"}, width: 3, want: []string{"a", "", ""}},
		{name: "empty row fully padded", row: nil, width: 2, want: []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArity(tt.row, tt.width))
		})
	}
}

func TestInsertRows_AllSucceed(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{}, exec)

	rows := [][]string{{"alice", "30"}, {"bob", "41"}, {"carol", "55"}}
	inserted, err := s.insertRows(context.Background(), "people", []string{"name", "age"}, rows)

	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
	require.Len(t, exec.calls, 3)
	assert.Equal(t, []string{"alice", "30"}, exec.calls[0].params)
	assert.Equal(t, `INSERT INTO "people" ("name", "age") VALUES (?, ?)`, exec.calls[0].query)
}

func TestInsertRows_StopsOnFirstFailure(t *testing.T) {
	exec := &fakeExecutor{failAt: 3, failDetail: "constraint violated"}
	s := NewService(&fakeFetcher{}, exec)

	rows := [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}
	inserted, err := s.insertRows(context.Background(), "t", []string{"v"}, rows)

	assert.Equal(t, 2, inserted)

	var rowErr *RowInsertError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, 2, rowErr.Inserted)
	assert.Contains(t, rowErr.Detail, "constraint violated")

	// Rows 4 and 5 are never attempted.
	assert.Len(t, exec.calls, 3)
}

func TestInsertRows_NormalizesBeforeInsert(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{}, exec)

	rows := [][]string{{"only"}, {"a", "b", "c", "d"}}
	inserted, err := s.insertRows(context.Background(), "t", []string{"x", "y"}, rows)

	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, []string{"only", ""}, exec.calls[0].params)
	assert.Equal(t, []string{"a", "b"}, exec.calls[1].params)
}

func TestInsertRows_CancelledContext(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{}, exec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inserted, err := s.insertRows(ctx, "t", []string{"v"}, [][]string{{"1"}, {"2"}})

	assert.Equal(t, 0, inserted)
	var rowErr *RowInsertError
	require.ErrorAs(t, err, &rowErr)
	assert.Empty(t, exec.calls)
}
