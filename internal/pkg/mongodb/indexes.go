package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"flexgen/internal/model/generation"
)

// EnsureIndexes 创建所有模型的索引
// 这是一个统一的入口，用于在应用启动时创建所有模型的索引
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	models := []Model{
		&generation.Generation{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
