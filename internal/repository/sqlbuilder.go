package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// condBuilder accumulates optional WHERE predicates with positional args.
// Callers skip a predicate entirely when its filter key is absent, so an
// empty filter map yields the unfiltered base statement. All values travel
// as bound parameters; numeric filters arriving as raw strings are parsed
// here with a safe fallback (unparsable input contributes no clause).
type condBuilder struct {
	where []string
	args  []any
	argN  int
}

func newCondBuilder() *condBuilder {
	return &condBuilder{argN: 1}
}

func (b *condBuilder) Eq(col string, v any) {
	b.where = append(b.where, fmt.Sprintf("%s = $%d", col, b.argN))
	b.args = append(b.args, v)
	b.argN++
}

// EqInt binds an equality predicate against an integer column whose filter
// value arrives as a query-string token. Unparsable input is dropped.
func (b *condBuilder) EqInt(col string, raw string) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return
	}
	b.Eq(col, n)
}

// EqBool binds an equality predicate for a tri-state boolean filter
// ("true"/"false"; anything else is treated as absent).
func (b *condBuilder) EqBool(col string, raw string) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return
	}
	b.Eq(col, v)
}

func (b *condBuilder) GteInt(col string, raw string) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return
	}
	b.where = append(b.where, fmt.Sprintf("%s >= $%d", col, b.argN))
	b.args = append(b.args, n)
	b.argN++
}

// GteDate / LteDate bind inclusive calendar-date bounds. The raw value is
// passed through as a bound parameter for the database to parse; an empty
// value contributes no clause.
func (b *condBuilder) GteDate(col string, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	b.where = append(b.where, fmt.Sprintf("%s >= $%d", col, b.argN))
	b.args = append(b.args, raw)
	b.argN++
}

func (b *condBuilder) LteDate(col string, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	b.where = append(b.where, fmt.Sprintf("%s <= $%d", col, b.argN))
	b.args = append(b.args, raw)
	b.argN++
}

func (b *condBuilder) GteFloat(col string, raw string) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	b.where = append(b.where, fmt.Sprintf("%s >= $%d", col, b.argN))
	b.args = append(b.args, f)
	b.argN++
}

func (b *condBuilder) LteFloat(col string, raw string) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	b.where = append(b.where, fmt.Sprintf("%s <= $%d", col, b.argN))
	b.args = append(b.args, f)
	b.argN++
}

// Like binds a single-column case-insensitive substring match.
func (b *condBuilder) Like(col string, term string) {
	b.where = append(b.where, fmt.Sprintf("%s ILIKE $%d", col, b.argN))
	b.args = append(b.args, "%"+term+"%")
	b.argN++
}

// SearchGroup binds a parenthesized OR-group of ILIKE predicates, one per
// column. The wildcarded term is bound once per column (separate parameter
// slots, not parameter reuse).
func (b *condBuilder) SearchGroup(cols []string, term string) {
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, b.argN))
		b.args = append(b.args, "%"+term+"%")
		b.argN++
	}
	b.where = append(b.where, "("+strings.Join(parts, " OR ")+")")
}

// Conds renders the accumulated predicates as " AND c1 AND c2 ...", ready to
// append after the base statement's "WHERE 1=1". Empty when no filter
// contributed a clause.
func (b *condBuilder) Conds() string {
	if len(b.where) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.where, " AND ")
}

// Paginate renders LIMIT/OFFSET. LIMIT is appended and bound only when the
// raw limit parses as an integer; OFFSET only when both limit and offset
// parse, so an offset supplied without a limit is silently dropped.
// Unparsable values are treated as absent.
func (b *condBuilder) Paginate(limitRaw, offsetRaw string) string {
	limit, err := strconv.Atoi(strings.TrimSpace(limitRaw))
	if limitRaw == "" || err != nil {
		return ""
	}

	clause := fmt.Sprintf(" LIMIT $%d", b.argN)
	b.args = append(b.args, limit)
	b.argN++

	if offsetRaw != "" {
		if offset, err := strconv.Atoi(strings.TrimSpace(offsetRaw)); err == nil {
			clause += fmt.Sprintf(" OFFSET $%d", b.argN)
			b.args = append(b.args, offset)
			b.argN++
		}
	}
	return clause
}

// setBuilder accumulates "col = $n" fragments for sparse UPDATE statements.
// Only columns whose patch field was present get a fragment; the row id is
// bound last by the caller.
type setBuilder struct {
	sets []string
	args []any
	argN int
}

func newSetBuilder() *setBuilder {
	return &setBuilder{argN: 1}
}

func (b *setBuilder) Add(col string, v any) {
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, b.argN))
	b.args = append(b.args, v)
	b.argN++
}

func (b *setBuilder) Empty() bool {
	return len(b.sets) == 0
}

func (b *setBuilder) Clause() string {
	return strings.Join(b.sets, ", ")
}

// NextArg returns the positional placeholder index for the next bound value
// (used for the trailing WHERE id = $n).
func (b *setBuilder) NextArg() int {
	return b.argN
}
