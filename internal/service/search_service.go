package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"playto.com/communityfeed/internal/dto"
	"playto.com/communityfeed/internal/model"
)

const postsIndex = "posts"

type SearchService interface {
	IndexPost(post *model.Post) error
	DeletePost(id string) error
	SearchPosts(ctx context.Context, query string) ([]dto.PostSearchHit, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortable := []string{"created_at"}
	if _, err := s.client.Index(postsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}
}

type meiliPostDoc struct {
	ID             string `json:"id"`
	AuthorUsername string `json:"author_username"`
	Content        string `json:"content"`
	CreatedAt      int64  `json:"created_at"`
}

func (s *searchService) IndexPost(post *model.Post) error {
	doc := meiliPostDoc{
		ID:             post.ID.String(),
		AuthorUsername: post.Author.Username,
		Content:        sanitizeContent(post.Content),
		CreatedAt:      post.CreatedAt.Unix(),
	}

	primaryKey := "id"
	task, err := s.client.Index(postsIndex).AddDocuments([]meiliPostDoc{doc}, &primaryKey)
	if err != nil {
		return err
	}
	log.Printf("Indexed post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeletePost(id string) error {
	_, err := s.client.Index(postsIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchPosts(ctx context.Context, query string) ([]dto.PostSearchHit, error) {
	res, err := s.client.Index(postsIndex).SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit: 20,
	})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON to decode the untyped hits.
	raw, err := json.Marshal(res.Hits)
	if err != nil {
		return nil, err
	}
	var hits []dto.PostSearchHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}
