package generation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flexgen/internal/model/generation"
)

// GenerationRepository 生成审计仓库接口
type GenerationRepository interface {
	Create(ctx context.Context, g *generation.Generation) error
	ListRecent(ctx context.Context, limit int64, outcome string) ([]*generation.Generation, error)
}

// Repo 实现 GenerationRepository
type Repo struct {
	coll *mongo.Collection
}

// NewRepo 创建生成审计仓库
func NewRepo(db *mongo.Database) *Repo {
	var g generation.Generation
	return &Repo{coll: db.Collection(g.Collection())}
}

// Create 写入一条审计记录
func (r *Repo) Create(ctx context.Context, g *generation.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, g)
	return err
}

// ListRecent 按时间倒序查询最近的记录，outcome 为空时不过滤
func (r *Repo) ListRecent(ctx context.Context, limit int64, outcome string) ([]*generation.Generation, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	filter := bson.M{}
	if outcome != "" {
		filter["outcome"] = outcome
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := make([]*generation.Generation, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
