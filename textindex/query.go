package textindex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// selectDocs posts a full-text query to Solr's /select handler directly,
// the same "solr-go doesn't support this, post directly to solr" escape
// hatch the teacher uses for schema patches it can't express through the
// client library.
func (ix *Indexer) selectDocs(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 50
	}
	params := url.Values{}
	params.Set("q", fmt.Sprintf("_text_:%s", query))
	params.Set("rows", fmt.Sprintf("%d", limit))
	params.Set("wt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/solr/%s/select?%s", ix.endpoint, ix.collection, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected solr status: %s", resp.Status)
	}

	var payload struct {
		Response struct {
			Docs []map[string]any `json:"docs"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Response.Docs, nil
}
