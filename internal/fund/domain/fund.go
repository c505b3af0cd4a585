package domain

import (
	"gorm.io/gorm"
)

// FundRecord 一行数据表提取出的基金业绩快照，入库前的内存形态。
// 数值字段缺失时为 nil，Extra 承接已知 schema 之外的溢出数值列。
type FundRecord struct {
	Category   string
	SchemeName string
	LaunchDate string

	SizeApr   *float64
	SizeMay   *float64
	LatestNAV *float64

	Days7   *float64
	Days14  *float64
	Days21  *float64
	Month1  *float64
	Months3 *float64
	Months6 *float64
	YTD     *float64
	Year1   *float64
	Years2  *float64
	Years3  *float64
	Years4  *float64
	Years5  *float64
	Years7  *float64
	Years10 *float64

	Extra []float64
}

// CanonicalName 原始方案名的规约键
func (r *FundRecord) CanonicalName() string {
	return Key(r.SchemeName)
}

// setField 按逻辑字段写入数值，提取器据布局逐列调用
func (r *FundRecord) setField(f Field, v *float64) {
	switch f {
	case FieldSizeApr:
		r.SizeApr = v
	case FieldSizeMay:
		r.SizeMay = v
	case FieldLatestNAV:
		r.LatestNAV = v
	case FieldDays7:
		r.Days7 = v
	case FieldDays14:
		r.Days14 = v
	case FieldDays21:
		r.Days21 = v
	case FieldMonth1:
		r.Month1 = v
	case FieldMonths3:
		r.Months3 = v
	case FieldMonths6:
		r.Months6 = v
	case FieldYTD:
		r.YTD = v
	case FieldYear1:
		r.Year1 = v
	case FieldYears2:
		r.Years2 = v
	case FieldYears3:
		r.Years3 = v
	case FieldYears4:
		r.Years4 = v
	case FieldYears5:
		r.Years5 = v
	case FieldYears7:
		r.Years7 = v
	case FieldYears10:
		r.Years10 = v
	}
}

// Fund 持久化的基金行，清洗后的方案名全表唯一，同名再次摄取时
// 原地更新非键字段而不是新增行。
type Fund struct {
	gorm.Model
	Category      string `gorm:"column:category;type:varchar(128);not null" json:"category"`
	SchemeName    string `gorm:"column:scheme_name;type:varchar(255);uniqueIndex;not null" json:"scheme_name"`
	CanonicalName string `gorm:"column:canonical_name;type:varchar(255);index;not null" json:"canonical_name"`
	LaunchDate    string `gorm:"column:launch_date;type:varchar(64)" json:"launch_date"`

	SizeApr   *float64 `gorm:"column:fund_size_apr" json:"fund_size_apr"`
	SizeMay   *float64 `gorm:"column:fund_size_may" json:"fund_size_may"`
	LatestNAV *float64 `gorm:"column:latest_nav" json:"latest_nav"`

	Days7   *float64 `gorm:"column:days_7" json:"days_7"`
	Days14  *float64 `gorm:"column:days_14" json:"days_14"`
	Days21  *float64 `gorm:"column:days_21" json:"days_21"`
	Month1  *float64 `gorm:"column:month_1" json:"month_1"`
	Months3 *float64 `gorm:"column:months_3" json:"months_3"`
	Months6 *float64 `gorm:"column:months_6" json:"months_6"`
	YTD     *float64 `gorm:"column:ytd" json:"ytd"`
	Year1   *float64 `gorm:"column:year_1" json:"year_1"`
	Years2  *float64 `gorm:"column:years_2" json:"years_2"`
	Years3  *float64 `gorm:"column:years_3" json:"years_3"`
	Years4  *float64 `gorm:"column:years_4" json:"years_4"`
	Years5  *float64 `gorm:"column:years_5" json:"years_5"`
	Years7  *float64 `gorm:"column:years_7" json:"years_7"`
	Years10 *float64 `gorm:"column:years_10" json:"years_10"`
}

// TableName 指定表名
func (Fund) TableName() string {
	return "funds"
}

// NewFund 由提取记录构造入库行。方案名清洗两遍：第一遍剥离的样板
// 可能暴露出新的可剥离后缀，第二遍收敛，这里的重复是有意为之。
// 规约键在清洗后的名字上重新计算。
func NewFund(rec *FundRecord) *Fund {
	name := CleanSchemeName(CleanSchemeName(rec.SchemeName))
	return &Fund{
		Category:      rec.Category,
		SchemeName:    name,
		CanonicalName: Key(name),
		LaunchDate:    rec.LaunchDate,
		SizeApr:       rec.SizeApr,
		SizeMay:       rec.SizeMay,
		LatestNAV:     rec.LatestNAV,
		Days7:         rec.Days7,
		Days14:        rec.Days14,
		Days21:        rec.Days21,
		Month1:        rec.Month1,
		Months3:       rec.Months3,
		Months6:       rec.Months6,
		YTD:           rec.YTD,
		Year1:         rec.Year1,
		Years2:        rec.Years2,
		Years3:        rec.Years3,
		Years4:        rec.Years4,
		Years5:        rec.Years5,
		Years7:        rec.Years7,
		Years10:       rec.Years10,
	}
}
