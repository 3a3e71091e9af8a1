package odata

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestCompile_Golden pins the compiled output of representative option sets.
//
// To regenerate golden files, run:
//
//	go test ./odata -update
func TestCompile_Golden(t *testing.T) {
	scenarios := []struct {
		name  string
		build func() *QueryOptions
	}{
		{
			name: "list_query",
			build: func() *QueryOptions {
				q := NewQueryOptions()
				q.SetTable("accounts")
				q.SetSelect([]string{"name", "revenue"})
				q.SetFilter(AllOf("revenue gt 1000", "statecode eq 0"))
				q.SetOrderBy([]OrderBy{{Column: "revenue", Direction: Descending}})
				if err := q.SetTop(25); err != nil {
					t.Fatal(err)
				}
				return q
			},
		},
		{
			name: "expanded_row",
			build: func() *QueryOptions {
				q := NewQueryOptions()
				q.SetTable("accounts")
				q.SetRowKey("2f8a8c53-9b3f-4d28-9b3a-1c2f57d3e8aa")
				q.SetExpand(map[string]*ExpandNode{
					"primarycontact": {
						Select: []string{"fullname", "email"},
						Expand: map[string]*ExpandNode{"owner": nil},
					},
					"opportunities": {
						Filter: AllOf("statecode eq 0"),
						Top:    5,
					},
				})
				return q
			},
		},
		{
			name: "aggregation",
			build: func() *QueryOptions {
				q := NewQueryOptions()
				q.SetTable("salesorders")
				q.SetApply("groupby((customerid),aggregate(totalamount with sum as total))")
				return q
			},
		},
		{
			name: "alternate_key_reference_link",
			build: func() *QueryOptions {
				q := NewQueryOptions()
				q.SetTable("accounts")
				q.SetRowKey("accountnumber=A-100")
				q.SetAddRefToProperty("contact_customer_accounts")
				return q
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	var lines []string
	for _, scenario := range scenarios {
		compiled, err := scenario.build().Compile()
		require.NoError(t, err, scenario.name)
		lines = append(lines, scenario.name+": "+compiled)

		t.Run(scenario.name, func(t *testing.T) {
			g.Assert(t, scenario.name, []byte(compiled+"\n"))
		})
	}

	g.Assert(t, "all_scenarios", []byte(strings.Join(lines, "\n")+"\n"))
}
