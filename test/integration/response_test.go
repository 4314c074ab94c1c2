package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/survey/api/internal/core/domain"
)

func uniqueEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.New())
}

func submit(t *testing.T, app *testApp, payload map[string]any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Client.Post(app.Server.URL+"/api/responses", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getCount(t *testing.T, app *testApp) int64 {
	t.Helper()

	resp, err := app.Client.Get(app.Server.URL + "/api/responses/count")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["total"]
}

func TestSubmitAndRetrieve(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()

	// 1. Submit
	resp := submit(t, app, map[string]any{
		"email":             email,
		"motivation":        "I want to learn Go",
		"favorite_language": "Python",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, email, created.Email)
	require.NotNil(t, created.Motivation)
	assert.Equal(t, "I want to learn Go", *created.Motivation)
	assert.Equal(t, "Python", created.FavoriteLanguage)
	assert.False(t, created.SubmittedAt.IsZero())

	// 2. Count reflects the submission
	assert.Equal(t, int64(1), getCount(t, app))

	// 3. Stats aggregate it
	resp, err := app.Client.Get(app.Server.URL + "/api/responses/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []domain.LanguageStat
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.Len(t, stats, 1)
	assert.Equal(t, domain.LanguageStat{Language: "Python", Count: 1}, stats[0])

	// 4. Lookup by email returns the record
	resp, err = app.Client.Get(app.Server.URL + "/api/responses/" + email)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Email, fetched.Email)

	// 5. Existence check agrees
	resp, err = app.Client.Get(app.Server.URL + "/api/responses/check/" + email)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var check map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&check))
	assert.True(t, check["exists"])
}

func TestDuplicateEmailConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()

	resp := submit(t, app, map[string]any{"email": email, "favorite_language": "Java"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same identity despite different case and surrounding whitespace.
	resp = submit(t, app, map[string]any{"email": "  " + strings.ToUpper(email) + " ", "favorite_language": "Python"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	assert.Equal(t, int64(1), getCount(t, app))

	var rows int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM responses WHERE email = $1", email).Scan(&rows))
	assert.Equal(t, 1, rows, "the conflicting attempt must not store a second record")
}

func TestConstraintGuardsAgainstRace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Insert directly, bypassing the pre-check, then submit through the
	// API: the store constraint alone must produce the conflict.
	email := uniqueEmail()
	_, err := app.DB.Exec("INSERT INTO responses (email, favorite_language) VALUES ($1, $2)", email, "Java")
	require.NoError(t, err)

	resp := submit(t, app, map[string]any{"email": email, "favorite_language": "Python"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(1), getCount(t, app))
}

func TestRecentLimitAndOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	emails := make([]string, 7)
	for i := range emails {
		emails[i] = uniqueEmail()
		resp := submit(t, app, map[string]any{"email": emails[i], "favorite_language": "Otro"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		// Spread submission times so the expected order is unambiguous.
		_, err := app.DB.Exec(
			"UPDATE responses SET submitted_at = NOW() - make_interval(mins => $1) WHERE email = $2",
			len(emails)-i, emails[i],
		)
		require.NoError(t, err)
	}

	resp, err := app.Client.Get(app.Server.URL + "/api/responses/recent")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recent []domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recent))
	require.Len(t, recent, 5, "recent must never return more than 5 records")

	for i := range recent {
		assert.Equal(t, emails[len(emails)-1-i], recent[i].Email)
		if i > 0 {
			assert.False(t, recent[i].SubmittedAt.After(recent[i-1].SubmittedAt), "recent must be sorted newest-first")
		}
	}
}

func TestMotivationNormalization(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"empty string", map[string]any{"motivation": ""}},
		{"null", map[string]any{"motivation": nil}},
		{"omitted", map[string]any{}},
		{"whitespace only", map[string]any{"motivation": "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email := uniqueEmail()
			tc.payload["email"] = email
			tc.payload["favorite_language"] = "C#"

			resp := submit(t, app, tc.payload)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			getResp, err := app.Client.Get(app.Server.URL + "/api/responses/" + email)
			require.NoError(t, err)
			defer getResp.Body.Close()

			var fetched domain.Response
			require.NoError(t, json.NewDecoder(getResp.Body).Decode(&fetched))
			assert.Nil(t, fetched.Motivation)
		})
	}
}

func TestRejectedSubmissionsLeaveNoTrace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := submit(t, app, map[string]any{"email": uniqueEmail(), "favorite_language": "Rust"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "favorite_language", body.Details[0].Field)

	assert.Equal(t, int64(0), getCount(t, app))
}

func TestStatsTotalsMatchCount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	languages := []string{"Python", "Python", "Python", "Java", "C#", "C#"}
	for _, lang := range languages {
		resp := submit(t, app, map[string]any{"email": uniqueEmail(), "favorite_language": lang})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Client.Get(app.Server.URL + "/api/responses/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats []domain.LanguageStat
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.Len(t, stats, 3, "every stored language appears exactly once")

	var sum int64
	for i, s := range stats {
		sum += s.Count
		if i > 0 {
			assert.GreaterOrEqual(t, stats[i-1].Count, s.Count, "stats must be ordered by count descending")
		}
	}
	assert.Equal(t, getCount(t, app), sum)
	assert.Equal(t, domain.LanguageStat{Language: "Python", Count: 3}, stats[0])
}

func TestListAllNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	for i := 0; i < 3; i++ {
		email := uniqueEmail()
		resp := submit(t, app, map[string]any{"email": email, "favorite_language": "JavaScript"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		_, err := app.DB.Exec(
			"UPDATE responses SET submitted_at = NOW() - make_interval(mins => $1) WHERE email = $2",
			3-i, email,
		)
		require.NoError(t, err)
	}

	resp, err := app.Client.Get(app.Server.URL + "/api/responses")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 3)

	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].SubmittedAt.After(all[i-1].SubmittedAt))
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/responses/" + uniqueEmail())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
}
