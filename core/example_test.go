package core_test

import (
	"fmt"

	"github.com/katalvlaran/pipenet/core"
	"github.com/katalvlaran/pipenet/element"
	"github.com/katalvlaran/pipenet/units"
)

// ExampleNetwork_Solve drains one reservoir into another through a pipe
// sized to pass 10 gpm.
func ExampleNetwork_Solve() {
	// 1) Find the length of 1/2" sch 40 that loses 50 ft at 10 gpm:
	probe, _ := element.NewPipe(units.Q(1, "ft"), "1/2", "40", nil)
	perFoot, _ := probe.Loss(units.Q(10, "gpm"), element.Water20C)
	length := 50 / perFoot.Magnitude()

	// 2) Declare the network: A (100 ft) → S1 → B (50 ft):
	n := core.New()
	_ = n.Connect("S1", "A", "B")
	_ = n.ApplyBoundary("A", core.BoundaryHead, 100, "ft")
	_ = n.ApplyBoundary("B", core.BoundaryHead, 50, "ft")
	_ = n.AddElement("S1", element.KindPipe, element.Params{
		Length:   units.Q(length, "ft"),
		Nominal:  "1/2",
		Schedule: "40",
	})

	// 3) Solve and read the bound flow:
	if err := n.Solve(); err != nil {
		fmt.Println("error:", err)
		return
	}
	s, _ := n.Segment("S1")
	q, state := s.Flow()
	fmt.Printf("%.2f %s (%s)\n", q.Magnitude(), q.Unit(), state)

	// Output:
	// 10.00 gpm (bound)
}

// ExampleNetwork_Supply splits flow from one reservoir between two lower ones.
func ExampleNetwork_Supply() {
	n := core.New()
	_ = n.Connect("S1", "A", "J")
	_ = n.Connect("S2", "J", "B")
	_ = n.Connect("S3", "J", "C")
	_ = n.ApplyBoundary("A", core.BoundaryHead, 100, "ft")
	_ = n.ApplyBoundary("B", core.BoundaryHead, 60, "ft")
	_ = n.ApplyBoundary("C", core.BoundaryHead, 40, "ft")
	for _, id := range []string{"S1", "S2", "S3"} {
		_ = n.AddElement(id, element.KindPipe, element.Params{
			Length: units.Q(100, "ft"), Nominal: "1", Schedule: "40",
		})
	}
	if err := n.Solve(); err != nil {
		fmt.Println("error:", err)
		return
	}

	j, _ := n.Node("J")
	h, _ := j.Head()
	fmt.Printf("J: %.1f ft\n", h.Magnitude())
	for _, id := range []string{"A", "B", "C"} {
		q, _ := n.Supply(id)
		fmt.Printf("%s: %+.1f gpm\n", id, q.Magnitude())
	}

	// Output:
	// J: 62.5 ft
	// A: +24.8 gpm
	// B: -5.8 gpm
	// C: -19.0 gpm
}

// ExampleParseConfig turns a YAML document into Network options.
func ExampleParseConfig() {
	c, err := core.ParseConfig([]byte(`
solver:
  max_iterations: 25
fluid:
  viscosity: {value: 0.89, unit: cP}
`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	opts, _ := c.Options()
	n := core.New(opts...)
	fmt.Println(len(opts), n.Fluid().Viscosity)

	// Output:
	// 2 0.89 cP
}
