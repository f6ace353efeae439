package generation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mode 生成模式
type Mode string

const (
	ModeStandard Mode = "standard" // 滑块 + 可选虚荣指标
	ModeFreeform Mode = "freeform" // playground 自由指令
)

// String 返回模式的字符串表示
func (m Mode) String() string {
	return string(m)
}

// OutcomeSuccess 成功结果；失败时 Outcome 取 flextools.Reason
const OutcomeSuccess = "success"

// Generation 一次生成的审计记录
// 只记录请求元数据和结果分类，不保存生成的文本，也不保存调用方的自由文本
type Generation struct {
	ID             string    `bson:"id" json:"id"`                                               // 记录ID（UUID）
	RequestID      string    `bson:"request_id,omitempty" json:"request_id,omitempty"`           // HTTP 请求ID
	Mode           Mode      `bson:"mode" json:"mode"`                                           // 生成模式
	Platform       string    `bson:"platform,omitempty" json:"platform,omitempty"`               // 平台（校验失败时可能为空）
	Tone           string    `bson:"tone,omitempty" json:"tone,omitempty"`                       // 语气
	Arrogance      int       `bson:"arrogance" json:"arrogance"`                                 // 傲慢值
	Buzzwords      int       `bson:"buzzwords" json:"buzzwords"`                                 // 黑话值
	FakeMetrics    int       `bson:"fake_metrics" json:"fake_metrics"`                           // 假数据值
	SpiceLevel     *int      `bson:"spice_level,omitempty" json:"spice_level,omitempty"`         // 加辣
	HasNiche       bool      `bson:"has_niche" json:"has_niche"`
	HasTools       bool      `bson:"has_tools" json:"has_tools"`
	HasVanity      bool      `bson:"has_vanity" json:"has_vanity"`
	Outcome        string    `bson:"outcome" json:"outcome"`                                     // success 或错误分类
	UpstreamStatus int       `bson:"upstream_status,omitempty" json:"upstream_status,omitempty"` // 上游 HTTP 状态码
	OutputChars    int       `bson:"output_chars" json:"output_chars"`                           // 输出长度（字符数）
	LatencyMs      int64     `bson:"latency_ms" json:"latency_ms"`                               // 总耗时
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (g *Generation) Collection() string { return "generations" }

// EnsureIndexes 创建和维护索引
func (g *Generation) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(g.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
		{
			Keys: bson.D{
				{Key: "outcome", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_outcome_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
