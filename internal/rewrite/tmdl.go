package rewrite

import (
	"regexp"
	"strings"
)

// needsQuote reports whether an identifier needs the quoted declaration form.
func needsQuote(ident string) bool {
	return strings.ContainsAny(ident, " \t.+-*/%&|^<>=()[]{},;'\"")
}

// declName renders an identifier for an unquoted declaration site, adding
// quotes when the new name requires them.
func declName(ident string) string {
	if needsQuote(ident) {
		return "'" + ident + "'"
	}
	return ident
}

// TableDeclaration rewrites a table's own declaration line. The quoted form
// stays quoted; an unquoted old name gains quotes only when the new name
// requires them.
func TableDeclaration(old, new string) []Rule {
	return []Rule{
		regexRule("table-decl-quoted",
			`(?m)^(table\s+)'`+q(old)+`'`,
			"${1}'"+lit(new)+"'"),
		regexRule("table-decl",
			`(?m)^(table\s+)`+q(old)+`\b`,
			"${1}"+lit(declName(new))),
	}
}

// ColumnDeclaration rewrites a column declaration inside its owning table
// file, preserving indentation.
func ColumnDeclaration(old, new string) []Rule {
	return []Rule{
		regexRule("column-decl-quoted",
			`(?m)^(\s*column\s+)'`+q(old)+`'`,
			"${1}'"+lit(new)+"'"),
		regexRule("column-decl",
			`(?m)^(\s*column\s+)`+q(old)+`\b`,
			"${1}"+lit(declName(new))),
	}
}

// SourceColumn rewrites the physical column binding. Only applied in full
// rename mode; a display-only rename leaves the backend name decoupled.
func SourceColumn(old, new string) []Rule {
	return []Rule{
		regexRule("source-column-quoted",
			`(sourceColumn:\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("source-column",
			`(?m)(sourceColumn:\s*)`+q(old)+`\s*$`,
			"${1}"+lit(new)),
	}
}

// ModelRefs rewrites references to a table in model.tmdl: the ref table
// lines and the query-order annotation.
func ModelRefs(old, new string) []Rule {
	queryOrder := regexp.MustCompile(`(annotation\s+PBI_QueryOrder\s*=\s*\[)([^\]]*)(\])`)
	return []Rule{
		regexRule("model-ref-table-quoted",
			`(?m)^(ref table\s+)'`+q(old)+`'\s*$`,
			"${1}'"+lit(new)+"'"),
		regexRule("model-ref-table",
			`(?m)^(ref table\s+)`+q(old)+`\s*$`,
			"${1}"+lit(declName(new))),
		{
			Name: "model-query-order",
			Apply: func(text string) (string, bool) {
				out := queryOrder.ReplaceAllStringFunc(text, func(m string) string {
					sub := queryOrder.FindStringSubmatch(m)
					return sub[1] + strings.ReplaceAll(sub[2], `"`+old+`"`, `"`+new+`"`) + sub[3]
				})
				return out, out != text
			},
		},
	}
}

// TableRelationshipRefs rewrites TableName.Column prefixes in the
// relationships file when the table is renamed.
func TableRelationshipRefs(old, new string) []Rule {
	return []Rule{
		regexRule("rel-table-quoted",
			`'`+q(old)+`'(\.)`,
			"'"+lit(new)+"'${1}"),
		regexRule("rel-table",
			`\b`+q(old)+`(\.)`,
			lit(new)+"${1}"),
	}
}

// ColumnRelationshipRefs rewrites the column part of TableName.ColumnName
// pairs in the relationships file. Either side can carry the quoted form.
func ColumnRelationshipRefs(table, old, new string) []Rule {
	return []Rule{
		regexRule("rel-column-both-quoted",
			`('`+q(table)+`'\.)'`+q(old)+`'`,
			"${1}'"+lit(new)+"'"),
		regexRule("rel-column-name-quoted",
			`(\b`+q(table)+`\.)'`+q(old)+`'`,
			"${1}'"+lit(new)+"'"),
		regexRule("rel-column-table-quoted",
			`('`+q(table)+`'\.)`+q(old)+`\b`,
			"${1}"+lit(new)),
		regexRule("rel-column",
			`(\b`+q(table)+`\.)`+q(old)+`\b`,
			"${1}"+lit(new)),
	}
}

// RoleRefs rewrites a role file: the table permission declaration plus DAX
// bracket references inside the filter expression.
func RoleRefs(old, new string) []Rule {
	rules := []Rule{
		regexRule("role-permission-quoted",
			`(\btablePermission\s+)'`+q(old)+`'`,
			"${1}'"+lit(new)+"'"),
		regexRule("role-permission",
			`(\btablePermission\s+)`+q(old)+`\b`,
			"${1}"+lit(declName(new))),
	}
	return append(rules, TableBracketRefs(old, new)...)
}
