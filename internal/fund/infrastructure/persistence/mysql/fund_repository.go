package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
)

type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository 创建基金仓储实例
func NewFundRepository(db *gorm.DB) domain.FundRepository {
	return &fundRepository{db: db}
}

// Reset 重建 funds 表
func (r *fundRepository) Reset(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&domain.Fund{}) {
		if err := migrator.DropTable(&domain.Fund{}); err != nil {
			return err
		}
	}
	return migrator.CreateTable(&domain.Fund{})
}

// Save 以方案名为键 upsert：已存在则保留主键与创建时间原地更新，
// 否则插入新行。
func (r *fundRepository) Save(ctx context.Context, fund *domain.Fund) error {
	var existing domain.Fund
	err := r.db.WithContext(ctx).Where("scheme_name = ?", fund.SchemeName).First(&existing).Error
	if err == nil {
		fund.ID = existing.ID
		fund.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(fund).Error
	}
	return r.db.WithContext(ctx).Create(fund).Error
}

func (r *fundRepository) List(ctx context.Context) ([]domain.Fund, error) {
	var funds []domain.Fund
	err := r.db.WithContext(ctx).Order("scheme_name").Find(&funds).Error
	return funds, err
}

// CombinedRecords 基金左连接当前有效的经纪条款。连接在内存中完成：
// 条款表远小于基金表，两次顺序查询比带可空列的 SQL 连接便宜且好读。
// 无匹配条款的基金 Rate 为 nil，一条条款匹配多只基金时各自成对。
func (r *fundRepository) CombinedRecords(ctx context.Context) ([]domain.CombinedRecord, error) {
	funds, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var rates []domain.BrokerageRate
	now := time.Now()
	err = r.db.WithContext(ctx).
		Where("approved = ?", true).
		Where("valid_to IS NULL OR valid_to >= ?", now).
		Find(&rates).Error
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*domain.BrokerageRate, len(rates))
	for i := range rates {
		rate := &rates[i]
		if _, ok := byKey[rate.CanonicalName]; !ok {
			byKey[rate.CanonicalName] = rate
		}
	}

	combined := make([]domain.CombinedRecord, len(funds))
	for i, fund := range funds {
		combined[i] = domain.CombinedRecord{
			Fund: fund,
			Rate: byKey[fund.CanonicalName],
		}
	}
	return combined, nil
}
