package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	pgUniqueViolation = "23505"
	pgrstNoRows       = "PGRST116"
	acceptSingle      = "application/vnd.pgrst.object+json"
)

// PostgrestService is the Gateway for the hosted data service REST API.
type PostgrestService struct {
	client *resty.Client
}

func NewPostgrestService(cfg *config.HostedConfig) *PostgrestService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")+"/rest/v1").
		SetHeader("apikey", cfg.AnonKey).
		SetAuthToken(cfg.AnonKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	return &PostgrestService{client: client}
}

func (s *PostgrestService) Select(ctx context.Context, table string, q repository.Query, dest any) error {
	params := QueryParams(q)
	params.Set("select", "*")
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(dest).
		Get("/" + table)
	return checkResponse(resp, err)
}

func (s *PostgrestService) Insert(ctx context.Context, table string, row any) error {
	body, err := writablePayload(row)
	if err != nil {
		return err
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", acceptSingle).
		SetBody(body).
		SetResult(row).
		Post("/" + table)
	return checkResponse(resp, err)
}

func (s *PostgrestService) Update(ctx context.Context, table string, id string, fields map[string]any, dest any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Accept", acceptSingle).
		SetQueryParam("id", "eq."+id).
		SetBody(fields).
		SetResult(dest).
		Patch("/" + table)
	return checkResponse(resp, err)
}

func (s *PostgrestService) Delete(ctx context.Context, table string, id string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		Delete("/" + table)
	if err := checkResponse(resp, err); err != nil {
		return err
	}
	if gjson.Get(resp.String(), "#").Int() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PostgrestService) Upsert(ctx context.Context, table string, rows any, conflict []string, updateColumns []string) error {
	body, err := writablePayload(rows)
	if err != nil {
		return err
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=representation").
		SetQueryParam("on_conflict", strings.Join(conflict, ",")).
		SetQueryParam("columns", strings.Join(append(append([]string(nil), conflict...), updateColumns...), ",")).
		SetBody(body).
		SetResult(rows).
		Post("/" + table)
	return checkResponse(resp, err)
}

// QueryParams renders q in PostgREST's horizontal filtering syntax.
func QueryParams(q repository.Query) url.Values {
	params := url.Values{}
	for _, p := range q.Predicates {
		switch p.Op {
		case repository.OpEq, repository.OpGte, repository.OpLte:
			params.Add(p.Column, string(p.Op)+"."+p.Value)
		case repository.OpILike:
			params.Add(p.Column, "ilike."+likeValue(p.Value))
		case repository.OpIn:
			quoted := make([]string, len(p.Values))
			for i, v := range p.Values {
				quoted[i] = quoteValue(v)
			}
			params.Add(p.Column, "in.("+strings.Join(quoted, ",")+")")
		case repository.OpSearch:
			conds := make([]string, len(p.Columns))
			for i, c := range p.Columns {
				conds[i] = c + ".ilike." + quoteReserved("*"+likeValue(p.Value)+"*")
			}
			params.Add("or", "("+strings.Join(conds, ",")+")")
		}
	}
	if len(q.Orders) > 0 {
		orders := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			orders[i] = o.Column + "." + dir
		}
		params.Set("order", strings.Join(orders, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprint(q.Limit))
	}
	return params
}

// likeValue rewrites a literal * as the single-character wildcard, since
// PostgREST turns every * of a like pattern into %.
func likeValue(v string) string {
	return strings.ReplaceAll(v, "*", "_")
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteValue(v string) string {
	return `"` + valueEscaper.Replace(v) + `"`
}

// quoteReserved wraps values containing PostgREST delimiters in double quotes.
func quoteReserved(v string) string {
	if strings.ContainsAny(v, `,.:()"\`) {
		return quoteValue(v)
	}
	return v
}

// writablePayload drops server-assigned columns that still hold their zero
// value so the hosted defaults apply.
func writablePayload(row any) (any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	switch v := decoded.(type) {
	case map[string]any:
		stripServerColumns(v)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				stripServerColumns(m)
			}
		}
	}
	return decoded, nil
}

func stripServerColumns(m map[string]any) {
	if m["id"] == uuid.Nil.String() {
		delete(m, "id")
	}
	for _, k := range []string{"created_at", "updated_at"} {
		if s, ok := m[k].(string); ok && strings.HasPrefix(s, "0001-01-01") {
			delete(m, k)
		}
	}
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("data service request: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	body := resp.String()
	code := gjson.Get(body, "code").String()
	message := gjson.Get(body, "message").String()
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	switch {
	case code == pgUniqueViolation || resp.StatusCode() == http.StatusConflict:
		return fmt.Errorf("%w: %s", repository.ErrUniqueViolation, message)
	case code == pgrstNoRows:
		return repository.ErrNotFound
	}
	if details := gjson.Get(body, "details").String(); details != "" {
		message += " (" + details + ")"
	}
	return fmt.Errorf("data service: %s", message)
}
