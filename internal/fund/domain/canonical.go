package domain

import (
	"sort"
	"strings"
	"unicode"
)

// Key 将原始方案名规约为稳定的比较键：小写、去除非字母数字
// 字符（保留空白）、压缩连续空白、去除首尾空白。
// 幂等：Key(Key(x)) == Key(x)。
func Key(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// infixNoise 方案名中随处出现的计划类型样板，整体移除
var infixNoise = []string{
	" - Reg - Growth",
	"- Reg - Growth",
	" - Reg - Gth",
	"- Reg - Gth",
	" - Reg - G P",
	"- Reg - G P",
	" - Reg ",
	"- Reg ",
}

// suffixNoise 仅出现在结尾时移除的计划类型后缀
var suffixNoise = []string{
	"- Reg - Growth",
	"- Reg - Gth",
	"- Reg - G P",
	" - Regular",
	"- Regular",
	" Regular",
	"Regular",
	" - Growth",
	"- Growth",
	"-Growth",
	" Growth",
	"Growth",
	" - Reg",
	" -Reg",
	"- Reg",
	"-Reg",
}

func init() {
	// 长模式优先，避免短后缀抢先吃掉长模式的一部分
	sort.SliceStable(infixNoise, func(i, j int) bool { return len(infixNoise[i]) > len(infixNoise[j]) })
	sort.SliceStable(suffixNoise, func(i, j int) bool { return len(suffixNoise[i]) > len(suffixNoise[j]) })
}

// CleanSchemeName 生成入库用的展示名：先修剪两端的非字母数字字符并
// 压缩空白，再按长模式优先移除已知的计划类型样板（如 "- Reg - Growth"、
// "-Reg"、"Regular"），最后再做一遍边缘修剪，清理后缀移除暴露出的
// 残留连字符。对已清洗的输出幂等。
func CleanSchemeName(raw string) string {
	name := trimEdges(raw)

	for _, pattern := range infixNoise {
		name = strings.ReplaceAll(name, pattern, "")
	}
	for _, suffix := range suffixNoise {
		name = strings.TrimSuffix(name, suffix)
	}

	return trimEdges(name)
}

// trimEdges 去除两端的非字母数字字符并压缩内部空白
func trimEdges(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(strings.Fields(s), " ")
}
