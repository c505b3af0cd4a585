package domain

import "context"

// FundRepository 基金仓储接口
type FundRepository interface {
	// Reset 重建 funds 表，丢弃全部已有行
	Reset(ctx context.Context) error
	// Save 以清洗后的方案名为键做 upsert：存在则原地更新非键字段，
	// 不存在则插入
	Save(ctx context.Context, fund *Fund) error
	// List 按方案名升序返回全部基金
	List(ctx context.Context) ([]Fund, error)
	// CombinedRecords 返回基金与当前有效经纪条款的左连接视图
	CombinedRecords(ctx context.Context) ([]CombinedRecord, error)
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}
