// Package search maintains a secondary Elasticsearch index of public member
// profiles. It is advisory: index failures are logged, never surfaced to the
// write path that triggered them. Postgres stays the source of truth.
package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/chapternet/directory-api/internal/domain/repository"
)

type MemberIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewMemberIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *MemberIndex {
	return &MemberIndex{es: es, index: index, logger: logger}
}

// MemberDoc is the flattened document shape stored per member.
type MemberDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Industry  string `json:"industry"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"image_url"`
	UpdatedAt string `json:"updated_at"`
}

// Index upserts one member document keyed by user id.
func (m *MemberIndex) Index(ctx context.Context, rec *repository.MemberRecord) error {
	if m == nil || m.es == nil || m.index == "" {
		return nil
	}
	doc := MemberDoc{
		ID:        rec.User.ID,
		Name:      rec.User.FullName(),
		Email:     rec.User.Email,
		Title:     rec.Profile.Title,
		Company:   rec.Profile.CompanyName,
		Industry:  rec.Profile.Industry,
		Slug:      rec.Profile.Slug,
		ImageURL:  rec.Profile.ImageURL,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: m.index, DocumentID: doc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, m.es)
	if err != nil {
		if m.logger != nil {
			m.logger.WithError(err).WithField("user_id", doc.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && m.logger != nil {
		m.logger.WithField("status", res.Status()).WithField("user_id", doc.ID).Warn("es index response error")
	}
	return nil
}

// Remove deletes a member document, e.g. after an admin deletes the account.
func (m *MemberIndex) Remove(ctx context.Context, userID string) error {
	if m == nil || m.es == nil || m.index == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: m.index, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, m.es)
	if err != nil {
		if m.logger != nil {
			m.logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return err
	}
	_ = res.Body.Close()
	return nil
}

// Quick runs a multi_match over name, title, company and email. Used by the
// admin quick-search box; the canonical faceted search stays on Postgres.
func (m *MemberIndex) Quick(ctx context.Context, q string, size int) ([]MemberDoc, error) {
	if m == nil || m.es == nil || m.index == "" {
		return []MemberDoc{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "title", "company", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := m.es.Search(
		m.es.Search.WithContext(c),
		m.es.Search.WithIndex(m.index),
		m.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source MemberDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]MemberDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
