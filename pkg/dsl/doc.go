/*
Package dsl provides a fluent API for defining decision graphs in Go.

It complements the YAML loader: the same graph can be written as data or as
code, and both end in a validated *domain.Graph.

# Usage

	g, err := dsl.New("hbv").
		Add("step1").Question("HBsAg").
		Positive(dsl.Next("step2")).
		Negative(dsl.Next("step4")).
		Add("step2").Question("IgM anti-HBc").
		Positive(dsl.Result("Acute HBV")).
		Negative(dsl.Result("Chronic HBV carrier")).
		Build()

The first node added becomes the root unless Root is called.
*/
package dsl
