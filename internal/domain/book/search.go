package book

import (
	"fmt"
	"strings"
	"sync"
)

// =========================================
// 图书搜索条件组合
// =========================================
//
// 搜索参数中的每个过滤字段（title、author）都是可选的：
//
//	GET /books/search?titles=Kobzar&authors=Shevchenko
//
// SpecificationBuilder从"匹配全部"开始，按字段从ProviderRegistry取出条件生成函数，
// 逐个AND组合。新增可过滤字段只需Register一个新的Provider，组合逻辑不变。
// 整个构建过程是纯函数，不做任何I/O，由仓储层把Specification翻译为SQL。

// Field 可过滤字段
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
)

// Condition 单字段条件：字段值属于Values集合（集合成员匹配，不是子串匹配）
type Condition struct {
	Field  Field
	Values []string
}

// Specification 多个Condition的AND组合
// 零值即"匹配全部未删除图书"
type Specification struct {
	conditions []Condition
}

// AllBooks 不做任何过滤的Specification
func AllBooks() Specification {
	return Specification{}
}

// And 追加条件，返回新的Specification（原值不变）
func (s Specification) And(c Condition) Specification {
	conds := make([]Condition, 0, len(s.conditions)+1)
	conds = append(conds, s.conditions...)
	conds = append(conds, c)
	return Specification{conditions: conds}
}

// Conditions 返回条件副本
func (s Specification) Conditions() []Condition {
	out := make([]Condition, len(s.conditions))
	copy(out, s.conditions)
	return out
}

// ConditionProvider 根据参数值生成条件
type ConditionProvider func(values []string) Condition

// FieldInProvider 生成"字段值 IN values"条件的Provider
func FieldInProvider(f Field) ConditionProvider {
	return func(values []string) Condition {
		return Condition{Field: f, Values: values}
	}
}

// ProviderRegistry 参数名 → ConditionProvider
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]ConditionProvider
}

// NewProviderRegistry 创建注册表，预置title、author
func NewProviderRegistry() *ProviderRegistry {
	r := &ProviderRegistry{providers: make(map[string]ConditionProvider)}
	r.Register(string(FieldTitle), FieldInProvider(FieldTitle))
	r.Register(string(FieldAuthor), FieldInProvider(FieldAuthor))
	return r
}

// Register 注册（或覆盖）某个参数名的Provider
func (r *ProviderRegistry) Register(key string, p ConditionProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[key] = p
}

// Provider 按参数名查找Provider
func (r *ProviderRegistry) Provider(key string) (ConditionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[key]
	if !ok {
		return nil, ErrUnknownSearchField.WithMessage(fmt.Sprintf("不支持的搜索字段: %s", key))
	}
	return p, nil
}

// SearchParams 搜索参数（均可为空）
type SearchParams struct {
	Titles  []string
	Authors []string
}

// filters 参数名与值的固定顺序列表（保证生成SQL稳定）
func (p SearchParams) filters() []struct {
	key    string
	values []string
} {
	return []struct {
		key    string
		values []string
	}{
		{string(FieldTitle), p.Titles},
		{string(FieldAuthor), p.Authors},
	}
}

// SpecificationBuilder 根据SearchParams构建Specification
type SpecificationBuilder struct {
	registry *ProviderRegistry
}

// NewSpecificationBuilder 创建构建器
func NewSpecificationBuilder(registry *ProviderRegistry) *SpecificationBuilder {
	return &SpecificationBuilder{registry: registry}
}

// Build 组合条件
// 空参数（nil或清洗后为空）直接跳过，全部为空时返回AllBooks()
func (b *SpecificationBuilder) Build(params SearchParams) (Specification, error) {
	spec := AllBooks()
	for _, f := range params.filters() {
		values := normalize(f.values)
		if len(values) == 0 {
			continue
		}
		provider, err := b.registry.Provider(f.key)
		if err != nil {
			return Specification{}, err
		}
		spec = spec.And(provider(values))
	}
	return spec, nil
}

// normalize 去除首尾空白、空值与重复值
func normalize(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
