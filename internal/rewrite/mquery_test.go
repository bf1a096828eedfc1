package rewrite

import "testing"

const salesPartition = "\tpartition Sales = m\n" +
	"\t\tmode: import\n" +
	"\t\tsource =\n" +
	"\t\t\tlet\n" +
	"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
	"\t\t\t\tdbo_Sales = Source{[Schema=\"dbo\",Item=\"Sales\"]}[Data]\n" +
	"\t\t\tin\n" +
	"\t\t\t\tdbo_Sales\n"

func TestTableSourceBinding(t *testing.T) {
	got := applyAll(t, salesPartition, TableSourceBinding("Sales", "Orders"))
	want := "\tpartition Sales = m\n" +
		"\t\tmode: import\n" +
		"\t\tsource =\n" +
		"\t\t\tlet\n" +
		"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
		"\t\t\t\tdbo_Orders = Source{[Schema=\"dbo\",Item=\"Orders\"]}[Data]\n" +
		"\t\t\tin\n" +
		"\t\t\t\tdbo_Orders\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableSourceBindingQuotedSteps(t *testing.T) {
	in := "\t\t\tlet\n" +
		"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
		"\t\t\t\t#\"dbo_Sales\" = Source{[Schema=\"dbo\",Item=\"Sales\"]}[Data],\n" +
		"\t\t\t\tRenamed = Table.RenameColumns(#\"dbo_Sales\",{})\n" +
		"\t\t\tin\n" +
		"\t\t\t\tRenamed\n"
	got := applyAll(t, in, TableSourceBinding("Sales", "Orders"))
	want := "\t\t\tlet\n" +
		"\t\t\t\tSource = Sql.Database(Server, Database),\n" +
		"\t\t\t\t#\"dbo_Orders\" = Source{[Schema=\"dbo\",Item=\"Orders\"]}[Data],\n" +
		"\t\t\t\tRenamed = Table.RenameColumns(#\"dbo_Orders\",{})\n" +
		"\t\t\tin\n" +
		"\t\t\t\tRenamed\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableSourceBindingNameParameter(t *testing.T) {
	in := `Source{[Name="Sales",Kind="Table"]}[Data]`
	got := applyAll(t, in, TableSourceBinding("Sales", "Orders"))
	want := `Source{[Name="Orders",Kind="Table"]}[Data]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSchemaBinding(t *testing.T) {
	in := `Source{[Schema="dbo",Item="Sales"]}[Data]`
	got := applyAll(t, in, SchemaBinding("dbo", "gold"))
	want := `Source{[Schema="gold",Item="Sales"]}[Data]`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableSourceBindingLeavesOtherTables(t *testing.T) {
	in := `dbo_Customer = Source{[Schema="dbo",Item="Customer"]}[Data]`
	out, changed := Apply(in, TableSourceBinding("Sales", "Orders"))
	if changed || out != in {
		t.Errorf("expected no-op, got %q", out)
	}
}
