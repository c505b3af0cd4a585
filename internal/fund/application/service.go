package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
	"github.com/wyfcoding/fundbarometer/pkg/logger"
	"github.com/wyfcoding/fundbarometer/pkg/metrics"
)

// ErrIngestInProgress 同一时刻只允许一次摄取
var ErrIngestInProgress = errors.New("ingestion already in progress")

// Options 摄取与查询的运行参数
type Options struct {
	// SkipSheets 命中即跳过的表名子串
	SkipSheets []string
	// Strategy 布局推断策略
	Strategy domain.LayoutStrategy
	// Mode 数值强制转换模式
	Mode domain.CoercionMode
	// DedupPolicy 跨表去重策略
	DedupPolicy domain.DedupPolicy
	// ResetSchema 摄取前是否重建 funds 表
	ResetSchema bool
}

// IngestResult 一次摄取的汇总
type IngestResult struct {
	Processed         int                  `json:"processed"`
	DuplicatesRemoved int                  `json:"duplicates_removed"`
	Sheets            []domain.SheetReport `json:"sheets"`
}

// FundService 基金应用服务：编排摄取流水线并持有搜索索引。
// publisher 可为 nil，表示未接入消息队列。
type FundService struct {
	repo      domain.FundRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	opts      Options
	open      domain.WorkbookOpener

	// ingestMu 串行化摄取，流水线不可重入
	ingestMu sync.Mutex

	// indexMu 保护索引指针换代，查询取指针后在旧实例上继续
	indexMu sync.RWMutex
	index   *domain.Index
}

func NewFundService(repo domain.FundRepository, publisher domain.EventPublisher, m *metrics.Metrics, open domain.WorkbookOpener, opts Options) *FundService {
	return &FundService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		opts:      opts,
		open:      open,
	}
}

// IngestFile 打开文件并摄取
func (s *FundService) IngestFile(ctx context.Context, path string) (*IngestResult, error) {
	wb, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()
	return s.Ingest(ctx, wb)
}

// Ingest 执行完整流水线：逐表提取、跨表去重、对账入库、重建索引、
// 发布事件。任何一步失败都不改变已对外可见的索引。
func (s *FundService) Ingest(ctx context.Context, wb domain.Workbook) (*IngestResult, error) {
	if !s.ingestMu.TryLock() {
		return nil, ErrIngestInProgress
	}
	defer s.ingestMu.Unlock()

	s.metrics.IngestRunsTotal.Inc()
	defer logger.LogDuration(ctx, "ingestion finished")()

	result, err := s.runPipeline(ctx, wb)
	if err != nil {
		s.metrics.IngestFailuresTotal.Inc()
		return nil, err
	}

	if err := s.RefreshIndex(ctx); err != nil {
		// 数据已入库，索引落后一代，旧索引继续服务查询
		logger.Error(ctx, "index rebuild after ingestion failed", "error", err)
	}

	if s.publisher != nil {
		event := domain.FundsIngestedEvent{
			Processed:         result.Processed,
			DuplicatesRemoved: result.DuplicatesRemoved,
			Sheets:            result.Sheets,
			IngestedAt:        time.Now(),
		}
		if err := s.publisher.Publish(ctx, domain.TopicFundsIngested, "ingest", event); err != nil {
			logger.Warn(ctx, "publish funds.ingested failed", "error", err)
		}
	}

	return result, nil
}

func (s *FundService) runPipeline(ctx context.Context, wb domain.Workbook) (*IngestResult, error) {
	extractor := &domain.Extractor{Strategy: s.opts.Strategy, Mode: s.opts.Mode}

	var (
		records []*domain.FundRecord
		reports []domain.SheetReport
	)
	for _, name := range wb.SheetNames() {
		if domain.SkipSheet(name, s.opts.SkipSheets) {
			logger.Debug(ctx, "sheet skipped", "sheet", name)
			continue
		}
		sheet, err := wb.Sheet(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}

		recs, report := extractor.ExtractSheet(sheet)
		records = append(records, recs...)
		reports = append(reports, *report)

		rejected := 0
		for _, n := range report.Rejected {
			rejected += n
		}
		s.metrics.RowsRejectedTotal.Add(float64(rejected))
		if report.Error != "" {
			logger.Warn(ctx, "sheet yielded no records", "sheet", name, "error", report.Error)
		} else {
			logger.Info(ctx, "sheet extracted",
				"sheet", name, "layout", report.Layout,
				"extracted", report.Extracted, "rejected", rejected)
		}
	}

	deduped, removed := domain.Deduplicate(records, s.opts.DedupPolicy)
	s.metrics.DuplicatesRemovedTotal.Add(float64(removed))

	if s.opts.ResetSchema {
		if err := s.repo.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset funds table: %w", err)
		}
	}

	// 单条入库失败不终止整次摄取，跳过并记录
	processed := 0
	for _, rec := range deduped {
		if err := s.repo.Save(ctx, domain.NewFund(rec)); err != nil {
			logger.Error(ctx, "save fund failed, skipping", "scheme", rec.SchemeName, "error", err)
			continue
		}
		processed++
	}
	s.metrics.RecordsProcessedTotal.Add(float64(processed))

	logger.Info(ctx, "ingestion pipeline completed",
		"processed", processed, "duplicates_removed", removed, "sheets", len(reports))

	return &IngestResult{
		Processed:         processed,
		DuplicatesRemoved: removed,
		Sheets:            reports,
	}, nil
}

// RefreshIndex 重建搜索索引。构建在锁外进行，仅指针换代持写锁；
// 构建失败时保留旧索引。返回新索引的记录数需调用 IndexSize。
func (s *FundService) RefreshIndex(ctx context.Context) error {
	combined, err := s.repo.CombinedRecords(ctx)
	if err != nil {
		return fmt.Errorf("load combined records: %w", err)
	}
	idx := domain.NewIndex(combined)

	s.indexMu.Lock()
	s.index = idx
	s.indexMu.Unlock()

	s.metrics.IndexRebuildsTotal.Inc()
	s.metrics.IndexRecords.Set(float64(idx.Len()))
	logger.Info(ctx, "virtual index rebuilt", "records", idx.Len())

	if s.publisher != nil {
		event := domain.IndexRebuiltEvent{Records: idx.Len(), RebuiltAt: time.Now()}
		if err := s.publisher.Publish(ctx, domain.TopicIndexRebuilt, "index", event); err != nil {
			logger.Warn(ctx, "publish funds.index.rebuilt failed", "error", err)
		}
	}
	return nil
}

// Search 查询当前索引。索引尚未构建时先做一次惰性刷新。
func (s *FundService) Search(ctx context.Context, query string, limit int) ([]domain.CombinedRecord, error) {
	s.indexMu.RLock()
	idx := s.index
	s.indexMu.RUnlock()

	if idx == nil {
		if err := s.RefreshIndex(ctx); err != nil {
			return nil, err
		}
		s.indexMu.RLock()
		idx = s.index
		s.indexMu.RUnlock()
	}

	s.metrics.SearchesTotal.Inc()
	return idx.Search(query, limit), nil
}

// IndexSize 当前索引的记录数
func (s *FundService) IndexSize() int {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return s.index.Len()
}
