// Command ecs-stress-gen generates the component and system definitions used
// by the ecs-stress tool. Regenerate with:
//
//	go run ./cmd/ecs-stress-gen -components 12 -systems 6 -out cmd/ecs-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"text/template"

	"golang.org/x/tools/imports"
)

const fileTemplate = `// Code generated by ecs-stress-gen. DO NOT EDIT.

package main

import (
	"math/rand"

	"github.com/plus3/keel/ecs"
)

const (
	componentCount = {{.ComponentCount}}
	systemCount    = {{.SystemCount}}
)

{{range .ComponentIndices}}
type StressComponent{{printf "%03d" .}} struct {
	A, B float64
	C    int64
}
{{end}}

// RegisterAllGeneratedComponents registers every generated component type.
func RegisterAllGeneratedComponents(w *ecs.World) {
{{- range .ComponentIndices}}
	ecs.RegisterComponent[StressComponent{{printf "%03d" .}}](w)
{{- end}}
}

var componentFactories = []func() any{
{{- range .ComponentIndices}}
	func() any { return StressComponent{{printf "%03d" .}}{A: rand.Float64(), B: rand.Float64(), C: rand.Int63n(1000)} },
{{- end}}
}

// SpawnRandomEntity spawns one entity with numComponents distinct randomly
// chosen component types.
func SpawnRandomEntity(w *ecs.World, numComponents int) ecs.Entity {
	if numComponents > len(componentFactories) {
		numComponents = len(componentFactories)
	}
	bundle := make([]any, 0, numComponents)
	for _, i := range rand.Perm(len(componentFactories))[:numComponents] {
		bundle = append(bundle, componentFactories[i]())
	}
	return w.AddEntity(bundle...)
}

{{range .Systems}}
type StressSystem{{printf "%03d" .Index}} struct {
	Entities ecs.Query[struct {
		Dst ecs.Write[StressComponent{{printf "%03d" .Dst}}]
		Src ecs.Read[StressComponent{{printf "%03d" .Src}}]
	}]
}

func (s *StressSystem{{printf "%03d" .Index}}) Execute(frame *ecs.Frame) {
	for _, item := range s.Entities.Iter() {
		item.Dst.Get().A += item.Src.Get().B * frame.DeltaTime
		item.Dst.Get().C = (item.Dst.Get().C + item.Src.Get().C) % 1000003
	}
}
{{end}}

// RegisterAllGeneratedSystems registers every generated system in order.
func RegisterAllGeneratedSystems(s *ecs.Scheduler) {
{{- range .Systems}}
	s.Register(&StressSystem{{printf "%03d" .Index}}{})
{{- end}}
}
`

type systemSpec struct {
	Index int
	Dst   int
	Src   int
}

type templateData struct {
	ComponentCount   int
	SystemCount      int
	ComponentIndices []int
	Systems          []systemSpec
}

func main() {
	components := flag.Int("components", 12, "Number of component types to generate.")
	systems := flag.Int("systems", 6, "Number of systems to generate.")
	out := flag.String("out", "cmd/ecs-stress/generated.go", "Output file path.")
	flag.Parse()

	if *components < 2 {
		log.Fatal("need at least 2 components: each system reads one type and writes another")
	}
	if *systems < 1 {
		log.Fatal("need at least 1 system")
	}

	data := buildData(*components, *systems)

	tmpl, err := template.New("generated").Parse(fileTemplate)
	if err != nil {
		log.Fatalf("parsing template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Fatalf("executing template: %v", err)
	}

	formatted, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("formatting generated code: %v", err)
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	fmt.Printf("wrote %s (%d components, %d systems)\n", *out, *components, *systems)
}

func buildData(components, systems int) templateData {
	data := templateData{ComponentCount: components, SystemCount: systems}
	for i := 0; i < components; i++ {
		data.ComponentIndices = append(data.ComponentIndices, i)
	}
	for i := 0; i < systems; i++ {
		// Each system writes one component type and reads a different
		// one, walking the type space so load spreads evenly.
		dst := (2 * i) % components
		src := (2*i + 1) % components
		data.Systems = append(data.Systems, systemSpec{Index: i, Dst: dst, Src: src})
	}
	return data
}
