package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_Success(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: "name,age\nalice,30\nbob,41\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/people.csv", "people", false)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.RowsInserted)
	assert.False(t, res.TableCreated)
	assert.Contains(t, res.Message, "2 rows")
	assert.Len(t, exec.calls, 2)
}

func TestIngest_CreateTableFirst(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: "User Name!,Email Address\nalice,a@example.com\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/u.csv", "users", true)

	assert.True(t, res.Success)
	assert.True(t, res.TableCreated)
	assert.Equal(t, 1, res.RowsInserted)

	require.Len(t, exec.calls, 2)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "users" (User_Name TEXT, Email_Address TEXT)`, exec.calls[0].query)
	assert.Equal(t, `INSERT INTO "users" ("User_Name", "Email_Address") VALUES (?, ?)`, exec.calls[1].query)
}

func TestIngest_FetchFailure(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{err: errors.New("connection refused")}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", true)

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.RowsInserted)
	assert.True(t, strings.HasPrefix(res.Message, "Error: "), "message = %q", res.Message)
	assert.Contains(t, res.Message, "failed to fetch CSV")
	assert.Empty(t, exec.calls, "no SQL should be issued on fetch failure")
}

func TestIngest_EmptyBody(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: ""}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", false)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Error: malformed CSV")
	assert.Empty(t, exec.calls)
}

func TestIngest_HeaderOnlyRejectedBeforeSQL(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: "a,b,c\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", true)

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.RowsInserted)
	assert.Contains(t, res.Message, "header row and at least one data row")
	assert.Empty(t, exec.calls, "no SQL call may precede validation")
}

func TestIngest_SchemaFailureAbortsBeforeRows(t *testing.T) {
	exec := &fakeExecutor{failAt: 1, failDetail: "read-only database"}
	s := NewService(&fakeFetcher{body: "a\n1\n2\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", true)

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.RowsInserted)
	assert.False(t, res.TableCreated)
	assert.Contains(t, res.Message, "failed to create table")
	assert.Len(t, exec.calls, 1, "no row insert may follow a failed CREATE")
}

func TestIngest_PartialFailureAccounting(t *testing.T) {
	// Row 3 of 5 fails: exactly 2 committed, rows 4 and 5 never attempted.
	exec := &fakeExecutor{failAt: 3, failDetail: "disk full"}
	s := NewService(&fakeFetcher{body: "v\n1\n2\n3\n4\n5\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", false)

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.RowsInserted)
	assert.Contains(t, res.Message, "row 3")
	assert.Contains(t, res.Message, "disk full")
	assert.Len(t, exec.calls, 3)
}

func TestIngest_QuotedCommaSurvivesToBinding(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: "x,y\n\"a,b\",c\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", false)

	assert.True(t, res.Success)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"a,b", "c"}, exec.calls[0].params,
		"quoted delimiter must be bound as a single value without quote characters")
}

func TestIngest_ValuesAreBoundNotInterpolated(t *testing.T) {
	exec := &fakeExecutor{}
	s := NewService(&fakeFetcher{body: "note\n'); DROP TABLE t; --\n"}, exec)

	res := s.Ingest(context.Background(), "http://example.com/x.csv", "t", false)

	assert.True(t, res.Success)
	require.Len(t, exec.calls, 1)
	assert.NotContains(t, exec.calls[0].query, "DROP TABLE")
	assert.Equal(t, "'); DROP TABLE t; --", exec.calls[0].params[0])
}
