package model

import (
	"sort"
	"strings"
)

// Category 看板分类及其产品名别名
type Category struct {
	Key     string   `json:"key"`
	Aliases []string `json:"aliases"`
}

// CategoryMap 分类 -> 别名列表，按 Key 排序以保证输出稳定
type CategoryMap []Category

// NewCategoryMap 由配置中的 map 构建有序分类表
func NewCategoryMap(m map[string][]string) CategoryMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(CategoryMap, 0, len(keys))
	for _, k := range keys {
		aliases := make([]string, 0, len(m[k]))
		for _, a := range m[k] {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		out = append(out, Category{Key: k, Aliases: aliases})
	}
	return out
}

// Keys 分类 key 列表
func (c CategoryMap) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, cat := range c {
		keys = append(keys, cat.Key)
	}
	return keys
}

// Matches 产品名是否命中该分类任一别名（不区分大小写的子串匹配）
func (c Category) Matches(product string) bool {
	p := strings.ToLower(product)
	for _, a := range c.Aliases {
		if strings.Contains(p, strings.ToLower(a)) {
			return true
		}
	}
	return false
}
