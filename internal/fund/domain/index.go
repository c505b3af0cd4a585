package domain

import (
	"sort"
	"strings"
)

// CombinedRecord 基金与经纪佣金条款的左连接视图：每只基金必然出现，
// 无匹配条款时 Rate 为 nil。
type CombinedRecord struct {
	Fund Fund           `json:"fund"`
	Rate *BrokerageRate `json:"rate,omitempty"`
}

// Index 组合视图的不可变内存索引。构建完成后只读，多个查询可并发
// 访问；刷新通过整体换新实例完成，持有旧实例的查询不受影响。
type Index struct {
	records []CombinedRecord
	byKey   map[string][]int
	// keys 排序后的去重规约键，子串扫描按此序遍历以保证结果稳定
	keys []string
}

// NewIndex 由组合视图记录构建索引
func NewIndex(records []CombinedRecord) *Index {
	idx := &Index{
		records: records,
		byKey:   make(map[string][]int, len(records)),
	}
	for i, rec := range records {
		key := rec.Fund.CanonicalName
		idx.byKey[key] = append(idx.byKey[key], i)
	}
	idx.keys = make([]string, 0, len(idx.byKey))
	for key := range idx.byKey {
		idx.keys = append(idx.keys, key)
	}
	sort.Strings(idx.keys)
	return idx
}

// Len 索引中的记录总数
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Search 两阶段查询：先取查询串规约键的精确命中，再按键序扫描
// 包含该键为子串的其余键。精确命中永远排在前面，同一个键的记录
// 不会出现两次。limit 限制返回总条数。
func (idx *Index) Search(query string, limit int) []CombinedRecord {
	if idx == nil || limit <= 0 {
		return nil
	}
	key := Key(query)
	if key == "" {
		return nil
	}

	out := make([]CombinedRecord, 0, limit)
	seen := make(map[string]bool)

	if positions, ok := idx.byKey[key]; ok {
		for _, pos := range positions {
			if len(out) >= limit {
				return out
			}
			out = append(out, idx.records[pos])
		}
		seen[key] = true
	}

	for _, candidate := range idx.keys {
		if len(out) >= limit {
			break
		}
		if seen[candidate] || !strings.Contains(candidate, key) {
			continue
		}
		for _, pos := range idx.byKey[candidate] {
			if len(out) >= limit {
				break
			}
			out = append(out, idx.records[pos])
		}
		seen[candidate] = true
	}

	return out
}
