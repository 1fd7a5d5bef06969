package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// GoalIndex keeps one Elasticsearch document per goal, keyed by goal id.
type GoalIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewGoalIndex(es *elasticsearch.Client, index string) *GoalIndex {
	return &GoalIndex{ES: es, IndexName: index}
}

type goalDoc struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (x *GoalIndex) Index(ctx context.Context, g *entity.Goal) error {
	doc := goalDoc{
		ID:          g.ID.String(),
		UserID:      g.UserID.String(),
		Title:       g.Title.String(),
		Description: g.Description.String(),
		Status:      string(g.Status),
		CreatedAt:   helpers.FormatISO(g.CreatedAt),
		UpdatedAt:   helpers.FormatISO(g.UpdatedAt),
	}
	if g.DueDate != nil {
		due := helpers.FormatISO(*g.DueDate)
		doc.DueDate = &due
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: doc.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *GoalIndex) Delete(ctx context.Context, id entity.GoalID) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id.String()}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match on title and description restricted to userID.
func (x *GoalIndex) Search(ctx context.Context, userID entity.UserID, q string, size int) ([]application.GoalHit, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID.String()},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source goalDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.GoalHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, application.GoalHit{
			ID:          h.ID,
			Title:       h.Source.Title,
			Description: h.Source.Description,
			Status:      h.Source.Status,
			Score:       h.Score,
		})
	}
	return out, nil
}

var _ application.GoalIndex = (*GoalIndex)(nil)
