package rewrite

// M source query rules. These bind the physical side of a table: the
// Item/Name/Schema source reference, the generated step variables carrying
// the table name, and the final export line. They run only for full renames;
// a display-only rename leaves the physical binding untouched.

// SchemaBinding rewrites Schema="old" source parameters.
func SchemaBinding(old, new string) []Rule {
	return []Rule{
		regexRule("m-schema",
			`(\bSchema\s*=\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
	}
}

// TableSourceBinding rewrites the physical table binding inside M queries.
func TableSourceBinding(old, new string) []Rule {
	return []Rule{
		regexRule("m-item",
			`(\bItem\s*=\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("m-name",
			`(\bName\s*=\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		// #"prefix_Table" quoted step identifiers, then the unquoted form.
		regexRule("m-step-quoted",
			`((?:=|,|\()\s*#")(\w+)_`+q(old)+`(")`,
			"${1}${2}_"+lit(new)+"${3}"),
		regexRule("m-step-prefixed",
			`((?:=|,|\()\s*)(\w+)_`+q(old)+`\b`,
			"${1}${2}_"+lit(new)),
		// Plain step assignment at line start, preserving indentation.
		regexRule("m-step-assign",
			`(?m)^(\s*)`+q(old)+`(\s*=\s*)`,
			"${1}"+lit(new)+"${2}"),
		// Final export line: in <variable>, prefixed or plain.
		regexRule("m-in-prefixed",
			`(\bin)(\s+)(\w+)_`+q(old)+`\b`,
			"${1}${2}${3}_"+lit(new)),
		regexRule("m-in-clause",
			`(\bin)(\s+)`+q(old)+`\b`,
			"${1}${2}"+lit(new)),
	}
}
