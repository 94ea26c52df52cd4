package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	serrors "github.com/idilsaglam/sorter/internal/errors"
)

func TestMain(m *testing.M) {
	// idle keep-alive connections of the shared transport close on their own
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

const fixture = `{"users":[
 {"firstName":"Ann","gender":"female","age":28,"hair":{"color":"Brown"},"company":{"department":"Engineering"}},
 {"firstName":"Bob","gender":"male","age":45,"hair":{"color":"Black"},"company":{"department":"Engineering"}},
 {"firstName":"Cid","gender":"male","age":31,"hair":{"color":"Brown"},"company":{"department":"Marketing"}},
 {"firstName":"Dee","gender":"female","age":31,"hair":{"color":"Blond"},"company":{}}
]}`

func TestLookup(t *testing.T) {
	u := User{
		"age":     float64(30),
		"company": map[string]any{"department": "Sales", "title": ""},
	}
	assert.Equal(t, "Sales", Lookup(u, "company.department"))
	assert.Equal(t, "30", Lookup(u, "age"))
	assert.Equal(t, "Property title not found", Lookup(u, "company.title"))
	assert.Equal(t, "Property x not found", Lookup(u, "age.x"))

	// a miss does not stop the walk; the last missing segment is named
	assert.Equal(t, "Property color not found", Lookup(u, "hair.color"))
	assert.Equal(t, "Property c not found", Lookup(u, "a.b.c"))
	assert.Equal(t, "Property department not found", Lookup(User{}, "company.department"))
}

func TestGroupByAndSummarize(t *testing.T) {
	users := []User{
		{"gender": "female", "age": float64(28), "hair": map[string]any{"color": "Brown"}, "company": map[string]any{"department": "Engineering"}},
		{"gender": "male", "age": float64(45), "hair": map[string]any{"color": "Black"}, "company": map[string]any{"department": "Engineering"}},
		{"gender": "male", "age": float64(31), "hair": map[string]any{"color": "Brown"}, "company": map[string]any{"department": "Marketing"}},
	}
	groups := GroupBy(users, "company.department")
	require.Len(t, groups, 2)
	assert.Len(t, groups["Engineering"], 2)

	stats := Summarize(groups, "hair.color")
	require.Len(t, stats, 2)
	assert.Equal(t, GroupStats{
		Group: "Engineering", Male: 1, Female: 1, AgeRange: "28-45",
		Colors: map[string]int{"Brown": 1, "Black": 1},
	}, stats[0])
	assert.Equal(t, "31", stats[1].AgeRange, "equal min and max collapse")
	assert.Equal(t, "Marketing", stats[1].Group)
}

func TestClientFetch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, GroupBy: "company.department", ColorField: "hair.color", Timeout: time.Second, Token: "Bearer abc"})
	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)

	groups := map[string]GroupStats{}
	for _, st := range stats {
		groups[st.Group] = st
	}
	assert.Contains(t, groups, "Property department not found")
	assert.Equal(t, 2, groups["Engineering"].Male+groups["Engineering"].Female)
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Options{URL: srv.URL}).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, serrors.Is(err, serrors.ErrNetwork))
	assert.Contains(t, err.Error(), "503")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer bad.Close()
	_, err = NewClient(Options{URL: bad.URL}).Fetch(context.Background())
	assert.True(t, serrors.Is(err, serrors.ErrNetwork))
}

func TestRunLogsAndSwallowsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	c := NewClient(Options{URL: srv.URL, GroupBy: "company.department", ColorField: "hair.color"})
	c.Run(context.Background(), log)
	srv.Close()
	assert.Equal(t, 3, logs.FilterMessage("user group").Len())

	c.Run(context.Background(), log)
	assert.Equal(t, 1, logs.FilterMessage("enrichment skipped").Len(), "closed server only logs")
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "tok", stripBearer("Bearer tok"))
	assert.Equal(t, "tok", stripBearer("bearer   tok"))
	assert.Equal(t, "tok", stripBearer("tok"))
}
