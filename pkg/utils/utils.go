// Package utils 提供指针、JSON、重试等通用辅助函数
package utils

import (
	"encoding/json"
	"time"
)

// ToJSON 将任意值序列化为 JSON 字符串，失败时返回空字符串
func ToJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// FromJSON 将 JSON 字符串反序列化到 v
func FromJSON(data string, v interface{}) error {
	return json.Unmarshal([]byte(data), v)
}

// Retry 以固定间隔重试执行 fn，直到成功或达到最大次数
func Retry(maxAttempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < maxAttempts {
			time.Sleep(delay)
		}
	}
	return err
}

// Float64Ptr 返回 float64 指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// StringPtr 返回 string 指针
func StringPtr(s string) *string {
	return &s
}

// DerefFloat64 解引用 float64 指针，nil 时返回 0
func DerefFloat64(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// DerefString 解引用 string 指针，nil 时返回空字符串
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsEmpty 判断字符串是否为空
func IsEmpty(s string) bool {
	return len(s) == 0
}
