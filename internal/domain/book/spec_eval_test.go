package book

// 内存中求值Specification，作为仓储SQL翻译的对照语义：
// 同字段IN（集合成员匹配）、字段之间AND、已软删除的图书永不命中

func fieldValue(b *Book, f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return b.Title, true
	case FieldAuthor:
		return b.Author, true
	default:
		return "", false
	}
}

func matches(c Condition, b *Book) bool {
	v, ok := fieldValue(b, c.Field)
	if !ok {
		return false
	}
	for _, want := range c.Values {
		if v == want {
			return true
		}
	}
	return false
}

func satisfies(spec Specification, b *Book) bool {
	if b == nil || b.IsDeleted {
		return false
	}
	for _, c := range spec.Conditions() {
		if !matches(c, b) {
			return false
		}
	}
	return true
}

func filterBooks(spec Specification, books []*Book) []*Book {
	out := make([]*Book, 0, len(books))
	for _, b := range books {
		if satisfies(spec, b) {
			out = append(out, b)
		}
	}
	return out
}
