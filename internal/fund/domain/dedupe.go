package domain

// DedupPolicy 跨表去重策略
type DedupPolicy string

const (
	// DedupExactName 按原始方案名精确匹配：出现超过一次的名字所有
	// 出现位置全部移除，一条不留。源表把同一基金重复列在多个类别页
	// 时，任何一条的类别归属都不可信。
	DedupExactName DedupPolicy = "exact-name"
	// DedupCanonicalFirstSeen 按规约键匹配，保留首次出现的记录。
	// 相比 exact-name 不丢数据，且能识破大小写与标点差异的重复。
	DedupCanonicalFirstSeen DedupPolicy = "canonical-first-seen"
)

// Deduplicate 跨表去重，在所有表提取完之后、入库之前执行一次。
// 返回保留的记录（保持输入顺序）与移除条数。
func Deduplicate(records []*FundRecord, policy DedupPolicy) ([]*FundRecord, int) {
	if policy == DedupExactName {
		return dedupeExactName(records)
	}
	return dedupeCanonicalFirstSeen(records)
}

func dedupeExactName(records []*FundRecord) ([]*FundRecord, int) {
	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[rec.SchemeName]++
	}

	kept := make([]*FundRecord, 0, len(records))
	removed := 0
	for _, rec := range records {
		if counts[rec.SchemeName] > 1 {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, removed
}

func dedupeCanonicalFirstSeen(records []*FundRecord) ([]*FundRecord, int) {
	seen := make(map[string]bool, len(records))
	kept := make([]*FundRecord, 0, len(records))
	removed := 0
	for _, rec := range records {
		key := rec.CanonicalName()
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, rec)
	}
	return kept, removed
}
