package pregel_test

import (
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SchemaTestSuite))

type SchemaTestSuite struct{}

func (s *SchemaTestSuite) TestBuild(c *gc.C) {
	schema, err := pregel.NewSchemaBuilder().
		Add("rank", graph.Double).
		AddWithVisibility("scratch", graph.LongArray, pregel.Private).
		AddFromProperty("seed", graph.Long, "initial_seed").
		Build()
	c.Assert(err, gc.IsNil)
	c.Assert(schema.Len(), gc.Equals, 3)

	elems := schema.Elements()
	c.Assert(elems[0].PropertyKey, gc.Equals, "rank")
	c.Assert(elems[1].Visibility, gc.Equals, pregel.Private)
	c.Assert(elems[2].SourceProperty, gc.Equals, "initial_seed")

	// Elements returns a copy.
	elems[0].PropertyKey = "changed"
	e, ok := schema.Element("rank")
	c.Assert(ok, gc.Equals, true)
	c.Assert(e.ValueType, gc.Equals, graph.Double)

	_, ok = schema.Element("changed")
	c.Assert(ok, gc.Equals, false)
}

func (s *SchemaTestSuite) TestDuplicateKey(c *gc.C) {
	_, err := pregel.NewSchemaBuilder().
		Add("rank", graph.Double).
		Add("rank", graph.Long).
		Build()
	c.Assert(xerrors.Is(err, pregel.ErrDuplicateSchemaKey), gc.Equals, true)
}

func (s *SchemaTestSuite) TestInvalidElements(c *gc.C) {
	_, err := pregel.NewSchemaBuilder().
		Add("", graph.Long).
		Add("bogus", graph.ValueType(42)).
		AddElement(pregel.Element{PropertyKey: "bad_default", ValueType: graph.Long, DefaultValue: 1.5}).
		AddElement(pregel.Element{PropertyKey: "int_default", ValueType: graph.Long, DefaultValue: 3}).
		Build()
	c.Assert(err, gc.ErrorMatches, "(?s)pregel schema validation failed: .*")
	c.Assert(err, gc.ErrorMatches, "(?s).*schema element #0: empty property key.*")
	c.Assert(err, gc.ErrorMatches, `(?s).*schema element "bogus": unsupported value type UNKNOWN\(42\).*`)
	c.Assert(err, gc.ErrorMatches, `(?s).*schema element "bad_default": default value 1.5 \(float64\) is not a valid LONG.*`)
	c.Assert(err, gc.ErrorMatches, `(?s).*schema element "int_default": default value 3 \(int\) is not a valid LONG.*`)
}

func (s *SchemaTestSuite) TestPartitioningNames(c *gc.C) {
	for _, p := range []pregel.Partitioning{pregel.RangePartitioning, pregel.DegreePartitioning} {
		got, err := pregel.ParsePartitioning(p.String())
		c.Assert(err, gc.IsNil)
		c.Assert(got, gc.Equals, p)
	}
	_, err := pregel.ParsePartitioning("hash")
	c.Assert(err, gc.ErrorMatches, `unsupported partitioning "hash"`)
}
