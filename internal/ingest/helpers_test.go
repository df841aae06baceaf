package ingest

import (
	"context"

	"github.com/JonMunkholm/csvloader/internal/database"
)

// execCall records one statement issued to the fake executor.
type execCall struct {
	query  string
	params []string
}

// fakeExecutor records every statement and can be told to fail a specific
// call (1-based). Uses "?" placeholders.
type fakeExecutor struct {
	calls      []execCall
	failAt     int
	failDetail string
}

func (f *fakeExecutor) Exec(_ context.Context, query string, params []string) (database.Result, error) {
	f.calls = append(f.calls, execCall{query: query, params: append([]string(nil), params...)})
	if f.failAt != 0 && len(f.calls) == f.failAt {
		return database.Result{Success: false, Detail: f.failDetail}, nil
	}
	return database.Result{Success: true, Detail: "1 row(s) affected"}, nil
}

func (f *fakeExecutor) Placeholder(int) string { return "?" }

func (f *fakeExecutor) Ping(context.Context) error { return nil }

// fakeFetcher returns a canned body or error for any URL.
type fakeFetcher struct {
	body string
	err  error
}

func (f *fakeFetcher) Fetch(context.Context, string) (string, error) {
	return f.body, f.err
}
