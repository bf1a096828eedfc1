package testutil

import "fmt"

// SalesTableTMDL returns a realistic table file with typed columns and an
// import-mode power query partition bound to a physical source table.
func SalesTableTMDL() string {
	return "table Sales\n" +
		"\tlineageTag: 3f2c1d9a-0b61-4f0e-9f0a-1d2e3f4a5b6c\n" +
		"\n" +
		"\tmeasure 'Total Amount' = SUM(Sales[Amount])\n" +
		"\t\tformatString: #,0.00\n" +
		"\n" +
		"\tcolumn OrderID\n" +
		"\t\tdataType: int64\n" +
		"\t\tsourceColumn: OrderID\n" +
		"\n" +
		"\t\tannotation SummarizationSetBy = Automatic\n" +
		"\n" +
		"\tcolumn Amount\n" +
		"\t\tdataType: decimal\n" +
		"\t\tsourceColumn: Amount\n" +
		"\n" +
		"\tcolumn 'Customer Key'\n" +
		"\t\tdataType: int64\n" +
		"\t\tisHidden\n" +
		"\t\tsourceColumn: CustomerKey\n" +
		"\n" +
		"\tpartition Sales = m\n" +
		"\t\tmode: import\n" +
		"\t\tsource =\n" +
		"\t\t\tlet\n" +
		"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
		"\t\t\t\tdbo_Sales = Source{[Schema=\"dbo\",Item=\"Sales\"]}[Data]\n" +
		"\t\t\tin\n" +
		"\t\t\t\tdbo_Sales\n"
}

// CustomerTableTMDL returns a table whose calculated column references the
// Sales table, exercising cross-table rewriting.
func CustomerTableTMDL() string {
	return "table Customer\n" +
		"\tlineageTag: 7a8b9c0d-1e2f-4a5b-8c9d-0e1f2a3b4c5d\n" +
		"\n" +
		"\tcolumn CustomerKey\n" +
		"\t\tdataType: int64\n" +
		"\t\tsourceColumn: CustomerKey\n" +
		"\n" +
		"\tcolumn Name\n" +
		"\t\tdataType: string\n" +
		"\t\tsourceColumn: Name\n" +
		"\n" +
		"\tcolumn Spend = CALCULATE(SUM(Sales[Amount]), Sales)\n" +
		"\t\tdataType: decimal\n" +
		"\n" +
		"\tpartition Customer = m\n" +
		"\t\tmode: import\n" +
		"\t\tsource =\n" +
		"\t\t\tlet\n" +
		"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
		"\t\t\t\tdbo_Customer = Source{[Schema=\"dbo\",Item=\"Customer\"]}[Data]\n" +
		"\t\t\tin\n" +
		"\t\t\t\tdbo_Customer\n"
}

// ModelTMDL returns a model.tmdl referencing the given tables.
func ModelTMDL(tables ...string) string {
	s := "model Model\n\tculture: en-US\n\tdefaultPowerBIDataSourceVersion: powerBI_V3\n\n"
	order := ""
	for _, t := range tables {
		s += "ref table " + t + "\n"
		if order != "" {
			order += ","
		}
		order += "\"" + t + "\""
	}
	s += "\nannotation PBI_QueryOrder = [" + order + "]\n"
	return s
}

// RelationshipsTMDL returns a relationships.tmdl joining Sales to Customer.
func RelationshipsTMDL() string {
	return "relationship 8d0a1b2c-3d4e-5f60-7a8b-9c0d1e2f3a4b\n" +
		"\tfromColumn: Sales.'Customer Key'\n" +
		"\ttoColumn: Customer.CustomerKey\n"
}

// DefinitionPBIR returns a definition.pbir bound by relative path to the
// named sibling semantic model.
func DefinitionPBIR(modelName string) string {
	return fmt.Sprintf(`{
  "version": "1.0",
  "datasetReference": {
    "byPath": {
      "path": "../%s.SemanticModel"
    }
  }
}
`, modelName)
}

// RemotePBIR returns a definition.pbir bound to a published dataset.
func RemotePBIR(modelName string) string {
	return fmt.Sprintf(`{
  "version": "1.0",
  "datasetReference": {
    "byConnection": {
      "connectionString": "Data Source=powerbi://api.powerbi.com/v1.0/myorg/Demo;Initial Catalog=%s;Integrated Security=ClaimsToken",
      "pbiModelDatabaseName": "%s"
    }
  }
}
`, modelName, modelName)
}

// VisualJSON returns a visual.json with direct query references to
// Sales[Amount] and Customer[Name].
func VisualJSON() string {
	return `{
  "name": "barChart1",
  "visual": {
    "query": {
      "queryState": {
        "Values": {
          "projections": [
            {
              "field": {
                "Measure": {
                  "Expression": {"SourceRef": {"Entity": "Sales"}},
                  "Property": "Total Amount"
                }
              },
              "queryRef": "Sales.Total Amount"
            },
            {
              "field": {
                "Column": {
                  "Expression": {"SourceRef": {"Entity": "Sales"}},
                  "Property": "Amount"
                }
              },
              "queryRef": "Sales.Amount"
            },
            {
              "field": {
                "Column": {
                  "Expression": {"SourceRef": {"Entity": "Customer"}},
                  "Property": "Name"
                }
              },
              "queryRef": "Customer.Name"
            }
          ]
        }
      }
    }
  }
}
`
}

// EscapedVisualJSON returns a visual config where the query lives in a
// string-escaped JSON blob, as older report exports store it.
func EscapedVisualJSON() string {
	return `{
  "config": "{\"name\":\"t1\",\"singleVisual\":{\"projections\":{\"Values\":[{\"queryRef\":\"Sales.Amount\"}]},\"prototypeQuery\":{\"From\":[{\"Name\":\"s\",\"Entity\":\"Sales\",\"Type\":0}],\"Select\":[{\"Column\":{\"Expression\":{\"SourceRef\":{\"Source\":\"s\"}},\"Property\":\"Amount\"}}]}}}"
}
`
}
