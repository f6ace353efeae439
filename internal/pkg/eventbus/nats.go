package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"flexgen/internal/config"
	"flexgen/internal/model/generation"
)

// DefaultSubject 生成事件的默认 subject
const DefaultSubject = "flexgen.generations"

// Publisher 把生成事件发布到 NATS，只发送元数据
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher 连接 NATS
func NewPublisher(cfg *config.NATSConfig) (*Publisher, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("flexgen"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, err
	}
	return NewPublisherWithConn(conn, cfg.Subject), nil
}

// NewPublisherWithConn 使用已有连接
func NewPublisherWithConn(conn *nats.Conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{conn: conn, subject: subject}
}

// Subject 返回基础 subject
func (p *Publisher) Subject() string {
	return p.subject
}

// PublishGeneration 发布到 <subject>.<mode>.<outcome>，订阅方可按通配符过滤
func (p *Publisher) PublishGeneration(ctx context.Context, g *generation.Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeGeneration(g)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectFor(p.subject, g), data)
}

// Ping 检查连接，供就绪检查使用
func (p *Publisher) Ping(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return nats.ErrConnectionClosed
	}
	return p.conn.FlushWithContext(ctx)
}

// Close 排空并关闭连接
func (p *Publisher) Close() error {
	return p.conn.Drain()
}

// SubjectFor 计算事件的完整 subject
func SubjectFor(base string, g *generation.Generation) string {
	return fmt.Sprintf("%s.%s.%s", base, g.Mode, g.Outcome)
}

// EncodeGeneration 事件体与审计记录同构
func EncodeGeneration(g *generation.Generation) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode generation event: %w", err)
	}
	return data, nil
}
