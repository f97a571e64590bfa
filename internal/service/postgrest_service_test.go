package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *PostgrestService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPostgrestService(&config.HostedConfig{URL: srv.URL + "/", AnonKey: "anon-key", Timeout: 5 * time.Second})
}

func TestQueryParams(t *testing.T) {
	q := repository.Query{Limit: 10}.
		Where(repository.Gte("start_date", "2024-01-01")).
		Where(repository.Lte("completion_date", "2024-01-31")).
		Where(repository.In("model", []string{"ASR", `Say "hi", now`})).
		Where(repository.ILike("name", "asha")).
		Where(repository.Search("hin", "language", "model")).
		OrderBy("start_date", false).
		OrderBy("created_at", true)

	params := QueryParams(q)

	assert.Equal(t, "gte.2024-01-01", params.Get("start_date"))
	assert.Equal(t, "lte.2024-01-31", params.Get("completion_date"))
	assert.Equal(t, `in.("ASR","Say \"hi\", now")`, params.Get("model"))
	assert.Equal(t, "ilike.asha", params.Get("name"))
	assert.Equal(t, "(language.ilike.*hin*,model.ilike.*hin*)", params.Get("or"))
	assert.Equal(t, "start_date.asc,created_at.desc", params.Get("order"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestQueryParamsQuotesReservedSearchTerms(t *testing.T) {
	params := QueryParams(repository.Query{}.Where(repository.Search("a,b", "model")))
	assert.Equal(t, `(model.ilike."*a,b*")`, params.Get("or"))
}

func TestQueryParamsKeepsLiteralStars(t *testing.T) {
	params := QueryParams(repository.Query{}.
		Where(repository.ILike("name", "A*")).
		Where(repository.Search("5*", "model")))
	assert.Equal(t, "ilike.A_", params.Get("name"))
	assert.Equal(t, "(model.ilike.*5_*)", params.Get("or"))
}

func TestSelectSendsKeyAndDecodesRows(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/master", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.Asha", r.URL.Query().Get("freelancer_name"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"7f1c2a52-8b0e-4a57-9f43-0c5b8a1f3e11","freelancer_name":"Asha","pay_rate_per_day":100,"total_time_taken":2,"start_date":"2024-01-01","completion_date":"2024-01-02","created_at":"2024-01-01T10:00:00.123456+00:00"}]`)
	})

	var tasks []model.Task
	err := svc.Select(context.Background(), repository.TableTasks, repository.Query{}.Where(repository.Eq("freelancer_name", "Asha")), &tasks)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 200.0, tasks[0].TotalPayment())
	assert.Equal(t, 2024, tasks[0].CreatedAt.Year())
}

func TestInsertStripsServerColumnsAndReadsRepresentation(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "created_at")
		assert.Equal(t, "Asha", body["name"])

		w.Header().Set("Content-Type", "application/vnd.pgrst.object+json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"7f1c2a52-8b0e-4a57-9f43-0c5b8a1f3e11","name":"Asha","language":["Hindi"]}`)
	})

	f := &model.Freelancer{Name: "Asha"}
	require.NoError(t, svc.Insert(context.Background(), repository.TableFreelancers, f))
	assert.Equal(t, "7f1c2a52-8b0e-4a57-9f43-0c5b8a1f3e11", f.ID.String())
	assert.Equal(t, []string{"Hindi"}, []string(f.Language))
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"code":"23505","message":"duplicate key value violates unique constraint","details":null}`)
	})

	err := svc.Insert(context.Background(), repository.TableFreelancers, &model.Freelancer{Name: "asha"})
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestOtherErrorsCarryServiceMessage(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":"42703","message":"column master.foo does not exist","details":"hint"}`)
	})

	var tasks []model.Task
	err := svc.Select(context.Background(), repository.TableTasks, repository.Query{}, &tasks)
	require.Error(t, err)
	assert.Equal(t, "data service: column master.foo does not exist (hint)", err.Error())
}

func TestDeleteReportsMissingRow(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.abc", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	})

	err := svc.Delete(context.Background(), repository.TableTasks, "abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpsertSendsConflictTarget(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "freelancer_type,group_type", r.URL.Query().Get("on_conflict"))
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")

		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 2)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[{"freelancer_type":"Linguist","group_type":"Group A","rate":110},{"freelancer_type":"Linguist","group_type":"Group B","rate":90}]`)
	})

	rows := []model.RateCard{
		{FreelancerType: "Linguist", GroupType: "Group A", Rate: 110},
		{FreelancerType: "Linguist", GroupType: "Group B", Rate: 90},
	}
	err := svc.Upsert(context.Background(), repository.TableRateCard, &rows, []string{"freelancer_type", "group_type"}, []string{"rate", "updated_at"})
	require.NoError(t, err)
	assert.Equal(t, 90.0, rows[1].Rate)
}
