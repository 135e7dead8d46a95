// Package pipenet solves steady-state flow in networks of pipes.
//
// A network is a set of junction nodes joined by directed segments; each
// segment strings together loss elements (straight pipe, fittings). Given some
// heads and flows as boundary conditions, pipenet finds every remaining head
// and flow such that mass is conserved at each junction and head balances
// along each segment.
//
// What is inside?
//
//	units/     dimensioned quantities over gonum/unit (gpm, ft, cP, kg/m3, …)
//	rootfind/  damped Newton for systems (gonum/diff/fd + gonum/mat) and a
//	           safeguarded scalar Newton
//	friction/  Reynolds number, laminar 64/Re and Colebrook–White (Darcy)
//	pipedata/  nominal size × schedule → internal diameter (embedded YAML)
//	element/   the Element capability, Pipe, Fitting and a kind registry
//	core/      Network, Node, Segment, boundaries, residuals, Solve,
//	           SolveAll, YAML Config, slog logging and Prometheus metrics
//	examples/  a runnable pump-station walkthrough
//
// Quick ASCII example:
//
//	A (100 ft) ──S1: 1/2" sch 40──► B (50 ft)
//
//	n := core.New()
//	_ = n.Connect("S1", "A", "B")
//	_ = n.ApplyBoundary("A", core.BoundaryHead, 100, "ft")
//	_ = n.ApplyBoundary("B", core.BoundaryHead, 50, "ft")
//	_ = n.AddElement("S1", element.KindPipe, element.Params{
//		Length: units.Q(52.7, "ft"), Nominal: "1/2", Schedule: "40",
//	})
//	err := n.Solve() // S1 now carries ≈ 10 gpm
//
//	go get github.com/katalvlaran/pipenet
package pipenet
