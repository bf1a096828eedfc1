package rewrite

// PBIR visual binding rules. Visual definition files reference entities in
// four shapes (entity binding, source alias, qualified query reference, bare
// native query reference), and each shape occurs both as direct JSON and as
// string-escaped JSON embedded inside config strings, so every rule has a
// paired escaped variant. The rules run over raw text rather than a parse
// tree: the escaped variant cannot be rewritten structurally without
// re-serializing the embedded document and reformatting what the user diffs.

// TableVisualRefs rewrites table references in a visual definition file.
func TableVisualRefs(old, new string) []Rule {
	return []Rule{
		// From-clause alias entries: {"Name":"s","Entity":"Table"}. These
		// run before the generic entity rules so the composite shape is
		// matched as declared.
		regexRule("visual-from-entity-escaped",
			`(\\"Name\\"\s*:\s*\\"[^"]+\\",\s*\\"Entity\\"\s*:\s*\\")`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-entity-escaped",
			`(\\"Entity\\"\s*:\s*\\")`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-entity",
			`("Entity"\s*:\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-source-escaped",
			`(\\"Source\\"\s*:\s*\\")`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-source",
			`("Source"\s*:\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-queryref-escaped",
			`(\\"queryRef\\"\s*:\s*\\")`+q(old)+`(\.[^\\"]+\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-queryref",
			`("queryRef"\s*:\s*")`+q(old)+`(\.[^"]+")`,
			"${1}"+lit(new)+"${2}"),
		// queryRefs arrays: ["Table.Column"].
		regexRule("visual-queryrefs-array",
			`(\[")`+q(old)+`(\.[^"]+"\])`,
			"${1}"+lit(new)+"${2}"),
	}
}

// ColumnVisualRefs rewrites column references in a visual definition file.
// The Entity/Property pair tolerates the brace runs between the SourceRef
// close and the Property key, in both nesting conventions.
func ColumnVisualRefs(table, old, new string) []Rule {
	return []Rule{
		regexRule("visual-property-escaped",
			`(\\"Entity\\"\s*:\s*\\"`+q(table)+`\\"[}\s\\]*,\s*\\"Property\\"\s*:\s*\\")`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-property",
			`("Entity"\s*:\s*"`+q(table)+`"[}\s]*,\s*"Property"\s*:\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-column-queryref-escaped",
			`(\\"queryRef\\"\s*:\s*\\"`+q(table)+`\.)`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-column-queryref",
			`("queryRef"\s*:\s*"`+q(table)+`\.)`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-nativequeryref-escaped",
			`(\\"nativeQueryRef\\"\s*:\s*\\")`+q(old)+`(\\")`,
			"${1}"+lit(new)+"${2}"),
		regexRule("visual-nativequeryref",
			`("nativeQueryRef"\s*:\s*")`+q(old)+`(")`,
			"${1}"+lit(new)+"${2}"),
	}
}
