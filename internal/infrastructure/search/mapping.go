package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// goalMapping keeps ids and statuses as exact keywords so the user_id term
// filter matches whole ids only.
const goalMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "user_id":     {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "status":      {"type": "keyword"},
      "due_date":    {"type": "date"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the goal index with its mapping unless it exists.
func (x *GoalIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{x.IndexName}}.Do(c, x.ES)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	switch exists.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("es index exists: %s", exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{Index: x.IndexName, Body: strings.NewReader(goalMapping)}.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// a concurrent starter may have won the race
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}
