package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

// WallTopic is the broker topic new wall posts are published to.
const WallTopic = "wall.posts"

// WallService persists family wall posts and fans them out over the broker
// so connected websocket clients see them live.
type WallService struct {
	store  domain.WallStore
	broker domain.MessageBroker
	now    func() time.Time
}

func NewWallService(store domain.WallStore, broker domain.MessageBroker) *WallService {
	return &WallService{
		store:  store,
		broker: broker,
		now:    time.Now,
	}
}

func (s *WallService) List(ctx context.Context) ([]*domain.WallPost, error) {
	return s.store.ListWallPosts(ctx)
}

func (s *WallService) Post(ctx context.Context, userName, content string) (*domain.WallPost, error) {
	post := &domain.WallPost{
		ID:        uuid.NewString(),
		UserName:  userName,
		Content:   strings.TrimSpace(content),
		CreatedAt: s.now(),
	}

	if err := s.store.AddWallPost(ctx, post); err != nil {
		return nil, err
	}

	event, err := json.Marshal(domain.WallPostEvent{
		ID:        post.ID,
		UserName:  post.UserName,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
	if err != nil {
		return post, nil
	}

	// Delivery to live clients is best effort; the post is already stored.
	if err := s.broker.Publish(ctx, WallTopic, "", event); err != nil {
		log.WithCtx(ctx).Warn("failed to publish wall post", zap.Error(err))
	}

	return post, nil
}
