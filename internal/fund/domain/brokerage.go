package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BrokerageRate 独立来源的经纪佣金条款，核心只读，仅用于拼装组合视图
type BrokerageRate struct {
	gorm.Model
	ARN           string `gorm:"column:arn;type:varchar(32);index" json:"arn"`
	SchemeName    string `gorm:"column:scheme_name;type:varchar(255);not null" json:"scheme_name"`
	CanonicalName string `gorm:"column:canonical_name;type:varchar(255);index;not null" json:"canonical_name"`
	Company       string `gorm:"column:company;type:varchar(128)" json:"company"`
	BrokerageType string `gorm:"column:brokerage_type;type:varchar(64)" json:"brokerage_type"`

	// 有效期窗口，ValidTo 为空表示长期有效
	ValidFrom *time.Time `gorm:"column:valid_from" json:"valid_from"`
	ValidTo   *time.Time `gorm:"column:valid_to" json:"valid_to"`
	Approved  bool       `gorm:"column:approved;default:false" json:"approved"`

	// 分年佣金基数
	FirstYearBase  decimal.Decimal `gorm:"column:first_year_base;type:decimal(10,4)" json:"first_year_base"`
	SecondYearBase decimal.Decimal `gorm:"column:second_year_base;type:decimal(10,4)" json:"second_year_base"`
	ThirdYearBase  decimal.Decimal `gorm:"column:third_year_base;type:decimal(10,4)" json:"third_year_base"`
}

// TableName 指定表名
func (BrokerageRate) TableName() string {
	return "brokerage_rates"
}

// Active 判断条款在给定时刻是否已审批且未过期
func (r *BrokerageRate) Active(now time.Time) bool {
	if !r.Approved {
		return false
	}
	if r.ValidTo != nil && r.ValidTo.Before(now) {
		return false
	}
	return true
}
