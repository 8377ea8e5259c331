package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBooks() []*Book {
	return []*Book{
		{ID: 1, Title: "Kobzar", Author: "Shevchenko", ISBN: "9780000000001", Price: decimal.NewFromInt(10)},
		{ID: 2, Title: "Avatar", Author: "Unknown", ISBN: "9780000000002", Price: decimal.NewFromInt(20)},
		{ID: 3, Title: "Terminator", Author: "Arnold", ISBN: "9780000000003", Price: decimal.NewFromInt(30)},
	}
}

func TestSpecificationBuilder_Build(t *testing.T) {
	builder := NewSpecificationBuilder(NewProviderRegistry())

	t.Run("标题+作者组合只命中一本", func(t *testing.T) {
		spec, err := builder.Build(SearchParams{Titles: []string{"Kobzar"}, Authors: []string{"Shevchenko"}})
		require.NoError(t, err)

		got := filterBooks(spec, fixtureBooks())
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("参数为空返回全部未删除图书", func(t *testing.T) {
		books := fixtureBooks()
		books[1].IsDeleted = true

		spec, err := builder.Build(SearchParams{})
		require.NoError(t, err)
		assert.Empty(t, spec.Conditions())

		got := filterBooks(spec, books)
		assert.Len(t, got, 2)
		for _, b := range got {
			assert.False(t, b.IsDeleted)
		}
	})

	t.Run("集合匹配而非子串匹配", func(t *testing.T) {
		spec, err := builder.Build(SearchParams{Titles: []string{"Kob"}})
		require.NoError(t, err)
		assert.Empty(t, filterBooks(spec, fixtureBooks()))
	})

	t.Run("同一字段多个值为OR", func(t *testing.T) {
		spec, err := builder.Build(SearchParams{Titles: []string{"Avatar", "Terminator"}})
		require.NoError(t, err)
		assert.Len(t, filterBooks(spec, fixtureBooks()), 2)
	})

	t.Run("空白与重复值被清洗", func(t *testing.T) {
		spec, err := builder.Build(SearchParams{Titles: []string{" Kobzar ", "", "Kobzar"}, Authors: []string{"  "}})
		require.NoError(t, err)

		conds := spec.Conditions()
		require.Len(t, conds, 1, "全空白的authors不应产生条件")
		assert.Equal(t, FieldTitle, conds[0].Field)
		assert.Equal(t, []string{"Kobzar"}, conds[0].Values)
	})

	t.Run("条件顺序固定为title在前", func(t *testing.T) {
		spec, err := builder.Build(SearchParams{Authors: []string{"Arnold"}, Titles: []string{"Terminator"}})
		require.NoError(t, err)

		conds := spec.Conditions()
		require.Len(t, conds, 2)
		assert.Equal(t, FieldTitle, conds[0].Field)
		assert.Equal(t, FieldAuthor, conds[1].Field)
	})
}

func TestProviderRegistry(t *testing.T) {
	t.Run("未注册的字段返回错误", func(t *testing.T) {
		r := &ProviderRegistry{providers: map[string]ConditionProvider{}}
		builder := NewSpecificationBuilder(r)

		_, err := builder.Build(SearchParams{Titles: []string{"Kobzar"}})
		assert.ErrorIs(t, err, ErrUnknownSearchField)
	})

	t.Run("覆盖Provider不需要修改组合逻辑", func(t *testing.T) {
		r := NewProviderRegistry()
		// title参数改为按作者过滤
		r.Register(string(FieldTitle), FieldInProvider(FieldAuthor))
		builder := NewSpecificationBuilder(r)

		spec, err := builder.Build(SearchParams{Titles: []string{"Arnold"}})
		require.NoError(t, err)

		got := filterBooks(spec, fixtureBooks())
		require.Len(t, got, 1)
		assert.Equal(t, "Terminator", got[0].Title)
	})
}

func TestSpecification_And_IsImmutable(t *testing.T) {
	base := AllBooks()
	withTitle := base.And(Condition{Field: FieldTitle, Values: []string{"Kobzar"}})

	assert.Empty(t, base.Conditions())
	assert.Len(t, withTitle.Conditions(), 1)
}

func TestCondition_UnknownFieldNeverMatches(t *testing.T) {
	c := Condition{Field: Field("isbn"), Values: []string{"9780000000001"}}
	assert.False(t, matches(c, fixtureBooks()[0]))
}
