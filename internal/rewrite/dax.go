package rewrite

import "strings"

// TableBracketRefs rewrites the table prefix of DAX bracket references:
// Table[Column] and 'Table Name'[Column]. These appear in measures,
// calculated columns, and calculated tables of every table file, so a table
// rename runs them across the whole model.
func TableBracketRefs(old, new string) []Rule {
	return []Rule{
		regexRule("dax-table-bracket-quoted",
			`'`+q(old)+`'(\[)`,
			"'"+lit(new)+"'${1}"),
		regexRule("dax-table-bracket",
			`\b`+q(old)+`(\[)`,
			lit(new)+"${1}"),
	}
}

// TableBareRefs rewrites standalone table references in DAX: the table name
// after an opening parenthesis, a comma, an assignment, or RETURN, when not
// immediately followed by a bracket (that form is the bracket reference
// above). Calculated-table expressions refer to whole tables this way.
func TableBareRefs(old, new string) []Rule {
	// The trailing optional bracket is part of the match so that what is
	// really a bracket reference can veto itself; RE2 has no lookahead.
	bare := func(name, lead string) Rule {
		return funcRule(name, lead+q(old)+`\b\[?`, func(m string) string {
			if strings.HasSuffix(m, "[") {
				return m
			}
			return strings.TrimSuffix(m, old) + new
		})
	}

	quoted := funcRule("dax-table-bare-quoted",
		`([(,=\s])'`+q(old)+`'\[?`, func(m string) string {
			if strings.HasSuffix(m, "[") {
				return m
			}
			return m[:1] + "'" + new + "'"
		})

	return []Rule{
		bare("dax-table-bare-paren", `(\()\s*`),
		bare("dax-table-bare-comma", `(,)\s*`),
		bare("dax-table-bare-assign", `(=)\s*`),
		bare("dax-table-bare-return", `(?i:\bRETURN)\s+`),
		quoted,
	}
}

// ColumnBracketRefs rewrites qualified column references Table[Column] and
// 'Table'[Column], including the related-row function wrapping either form.
// The wrapped variants run first so they see the original text.
func ColumnBracketRefs(table, old, new string) []Rule {
	return []Rule{
		regexRule("dax-related-quoted",
			`((?i:RELATED)\s*\(\s*'`+q(table)+`'\[)`+q(old)+`(\]\s*\))`,
			"${1}"+lit(new)+"${2}"),
		regexRule("dax-related",
			`((?i:RELATED)\s*\(\s*`+q(table)+`\[)`+q(old)+`(\]\s*\))`,
			"${1}"+lit(new)+"${2}"),
		regexRule("dax-column-quoted",
			`('`+q(table)+`'\[)`+q(old)+`(\])`,
			"${1}"+lit(new)+"${2}"),
		regexRule("dax-column",
			`(\b`+q(table)+`\[)`+q(old)+`(\])`,
			"${1}"+lit(new)+"${2}"),
	}
}

// BareBracketRefs rewrites [Column] references with no table qualifier.
// Only safe within the column's owning table file, where unqualified
// brackets always resolve to that table.
func BareBracketRefs(old, new string) []Rule {
	return []Rule{
		regexRule("dax-bare-bracket",
			`(\[)`+q(old)+`(\])`,
			"${1}"+lit(new)+"${2}"),
	}
}
