package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsl-ob-poc/internal/ubo/registry"
)

func freeRunningCache(t *testing.T) *registry.Cache {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ares_vr_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectQuery("SELECT ico, payload, fetched_at FROM ares_vr_cache").
			WillReturnRows(sqlmock.NewRows([]string{"ico", "payload", "fetched_at"}))
		mock.ExpectExec("INSERT INTO ares_vr_cache").WillReturnResult(sqlmock.NewResult(1, 1))
	}

	cache, err := registry.NewCache(sqlx.NewDb(db, "postgres"))
	require.NoError(t, err)
	return cache
}

func newResolverWithServer(t *testing.T, bodies map[string]string) *Resolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len(r.URL.Path)-8:]
		body, ok := bodies[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := registry.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MinDelayBetweenRequests = 0
	client := registry.NewClient(cfg, freeRunningCache(t))
	return NewResolver(client)
}

func TestResolve_DirectPersonFiftyPercent(t *testing.T) {
	bodies := map[string]string{
		"00000001": `{"icoId":"00000001","zaznamy":[{"primarniZaznam":true,
			"obchodniJmeno":[{"hodnota":"Root"}],
			"spolecnici":[{"nazevOrganu":"Společníci","spolecnik":[
				{"osoba":{"fyzickaOsoba":{"jmeno":"","prijmeni":"Novák"}},
				 "podil":[{"velikostPodilu":{"typObnos":"PROCENTA","hodnota":"50"}}]}
			]}]}]}`,
	}
	r := newResolverWithServer(t, bodies)

	res := r.Resolve(context.Background(), Options{RootID: "00000001", MaxDepth: 25})
	require.Len(t, res.Trace, 3)
	assert.Equal(t, "Root (IČO 00000001)", res.Trace[0].Text)
	assert.Equal(t, "Společníci:", res.Trace[1].Text)
	assert.Contains(t, res.Trace[2].Text, "Novák")
	require.NotNil(t, res.Trace[2].EffectivePct)
	assert.InDelta(t, 50.0, *res.Trace[2].EffectivePct, 1e-9)
}

func TestResolve_TwoLevelChain(t *testing.T) {
	bodies := map[string]string{
		"00000001": `{"icoId":"00000001","zaznamy":[{"primarniZaznam":true,
			"obchodniJmeno":[{"hodnota":"A"}],
			"spolecnici":[{"spolecnik":[
				{"osoba":{"pravnickaOsoba":{"ico":"00000002","obchodniJmeno":"B"}},
				 "podil":[{"velikostPodilu":{"typObnos":"PROCENTA","hodnota":"100"}}]}
			]}]}]}`,
		"00000002": `{"icoId":"00000002","zaznamy":[{"primarniZaznam":true,
			"obchodniJmeno":[{"hodnota":"B"}],
			"spolecnici":[{"spolecnik":[
				{"osoba":{"fyzickaOsoba":{"jmeno":"","prijmeni":"Svoboda"}},
				 "podil":[{"velikostPodilu":{"typObnos":"PROCENTA","hodnota":"40"}}]}
			]}]}]}`,
	}
	r := newResolverWithServer(t, bodies)

	res := r.Resolve(context.Background(), Options{RootID: "00000001", MaxDepth: 25})

	var svobodaLine *Line
	for i := range res.Trace {
		if containsName(res.Trace[i].Text, "Svoboda") {
			svobodaLine = &res.Trace[i]
		}
	}
	require.NotNil(t, svobodaLine)
	require.NotNil(t, svobodaLine.EffectivePct)
	assert.InDelta(t, 40.0, *svobodaLine.EffectivePct, 1e-9)
}

func TestResolve_MaxDepthZeroYieldsHeaderOnly(t *testing.T) {
	bodies := map[string]string{
		"00000001": `{"icoId":"00000001","zaznamy":[{"primarniZaznam":true,"obchodniJmeno":[{"hodnota":"Root"}]}]}`,
	}
	r := newResolverWithServer(t, bodies)

	res := r.Resolve(context.Background(), Options{RootID: "00000001", MaxDepth: 0})
	require.Len(t, res.Trace, 1)
	assert.Equal(t, "Root (IČO 00000001)", res.Trace[0].Text)
}

func TestResolve_SevenDigitIDZeroPadded(t *testing.T) {
	bodies := map[string]string{
		"00000001": `{"icoId":"00000001","zaznamy":[{"primarniZaznam":true,"obchodniJmeno":[{"hodnota":"Root"}]}]}`,
	}
	r := newResolverWithServer(t, bodies)

	res := r.Resolve(context.Background(), Options{RootID: "0000001", MaxDepth: 0})
	require.Len(t, res.Trace, 1)
	assert.Equal(t, "Root (IČO 00000001)", res.Trace[0].Text)
}

func TestResolve_ManualOverrideRecursesIntoTarget(t *testing.T) {
	bodies := map[string]string{
		"00000001": `{"icoId":"00000001","zaznamy":[{"primarniZaznam":true,"obchodniJmeno":[{"hodnota":"Root"}]}]}`,
		"00000009": `{"icoId":"00000009","zaznamy":[{"primarniZaznam":true,"obchodniJmeno":[{"hodnota":"Child"}]}]}`,
	}
	r := newResolverWithServer(t, bodies)

	res := r.Resolve(context.Background(), Options{
		RootID:   "00000001",
		MaxDepth: 25,
		ManualOverrides: map[string][]Override{
			"00000001": {{OwnerID: "00000009", Fraction: 1.0}},
		},
	})

	// The root's registry owner list is empty but the override fills it, so
	// the root must not be reported unresolved. The child 00000009 has no
	// owners of its own and is legitimately reported.
	for _, w := range res.Warnings {
		assert.False(t, w.Kind == WarnUnresolved && w.Ico == "00000001", "root reported unresolved: %+v", w)
	}

	var sawChildHeader bool
	for _, l := range res.Trace {
		if l.Text == "Child (IČO 00000009)" {
			sawChildHeader = true
		}
	}
	assert.True(t, sawChildHeader)
}

func containsName(text, name string) bool {
	return len(text) >= len(name) && (indexOf(text, name) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
