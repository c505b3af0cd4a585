package domain

import "time"

// Kafka 主题
const (
	TopicFundsIngested = "funds.ingested"
	TopicIndexRebuilt  = "funds.index.rebuilt"
)

// FundsIngestedEvent 一次摄取完成后发布
type FundsIngestedEvent struct {
	Processed         int           `json:"processed"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
	Sheets            []SheetReport `json:"sheets"`
	IngestedAt        time.Time     `json:"ingested_at"`
}

// IndexRebuiltEvent 搜索索引换代后发布
type IndexRebuiltEvent struct {
	Records   int       `json:"records"`
	RebuiltAt time.Time `json:"rebuilt_at"`
}
